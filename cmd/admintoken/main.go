// Command admintoken mints an admin JWT for the suspend/resume/close and
// risk-application endpoints. The token is printed to stdout; hand it to
// operators out of band.
package main

import (
	"fmt"
	"time"

	"credline/internal/config"
	"credline/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		logrus.Fatal("JWT_SECRET must be set in environment")
	}
	ttlHours := config.GetIntEnv("ADMIN_TOKEN_TTL_HOURS", 24)

	claims := models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(ttlHours) * time.Hour)),
		},
		Role: models.RoleAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Fatal("failed to sign token")
	}

	fmt.Println(signed)
}
