// Package middleware provides HTTP middleware for the fiber application,
// currently the admin gate in front of status-changing endpoints.
package middleware

import (
	"strings"

	"credline/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AdminMiddleware guards admin-only endpoints. Two credentials are accepted:
// a bearer JWT carrying role=admin, or a static service API key presented in
// X-API-Key and verified against a bcrypt hash from configuration.
type AdminMiddleware struct {
	jwtSecret  string
	apiKeyHash string
	log        *logrus.Logger
}

func NewAdminMiddleware(jwtSecret, apiKeyHash string, log *logrus.Logger) *AdminMiddleware {
	return &AdminMiddleware{
		jwtSecret:  jwtSecret,
		apiKeyHash: apiKeyHash,
		log:        log,
	}
}

// Handler validates admin credentials and aborts with 401/403 otherwise.
func (m *AdminMiddleware) Handler(c *fiber.Ctx) error {
	if key := c.Get("X-API-Key"); key != "" {
		if m.apiKeyHash == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "api key auth not configured"})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(m.apiKeyHash), []byte(key)); err != nil {
			m.log.Warn("admin api key rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid api key"})
		}
		return c.Next()
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		m.log.WithError(err).Warn("admin token rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
	}
	if !claims.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}

	c.Locals("claims", claims)
	return c.Next()
}
