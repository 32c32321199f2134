/*
Package creditline implements the credit line state machine and its ledger.

A credit line moves through the statuses pending -> active -> {suspended,
closed}, with suspended able to return to active. Closed is terminal. Every
mutation appends exactly one transaction to the line's ledger, carrying the
balance that resulted from it, so the line's current balance always equals the
resulting balance of its most recent transaction.

Repayment is accepted while a line is suspended as well as while it is active:
suspension stops new draws, it does not stop the borrower from paying down
what is already owed. Draws require the line to be active and the borrower to
be the wallet that owns the line.

Mutating operations on the same line are serialized through a per-line lock,
and each read-validate-write-append sequence runs inside a single database
transaction. Operations on different lines proceed concurrently. The risk
evaluation performed by ApplyRiskAssessment happens before the line's lock is
taken, so a slow risk engine never blocks other operations on the line.
*/
package creditline
