package risk

import "errors"

// ErrEvaluationFailed is returned when the external evaluator errors or
// produces malformed data. The underlying cause is wrapped alongside it.
var ErrEvaluationFailed = errors.New("risk evaluation failed")
