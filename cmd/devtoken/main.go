// Command devtoken mints an access token for local development.
//
//	go run ./cmd/devtoken -user 5f0c... -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/lifetwin-backend/internal/platform/envutil"
	"github.com/yungbote/lifetwin-backend/internal/services"
)

func main() {
	userFlag := flag.String("user", "", "user id (uuid); a new one is generated when empty")
	email := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := flag.String("secret", envutil.String("JWT_SECRET_KEY", "defaultsecret"), "HS256 signing secret")
	flag.Parse()

	userID := uuid.New()
	if *userFlag != "" {
		id, err := uuid.Parse(*userFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -user: %v\n", err)
			os.Exit(2)
		}
		userID = id
	}

	now := time.Now()
	claims := services.JWTClaims{
		Email: *email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "user_id=%s\n", userID)
	fmt.Println(signed)
}
