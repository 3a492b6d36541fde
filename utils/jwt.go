package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// Load the secret from an environment variable. Fallback to a default (not recommended in production).
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "STAYLOOP"
	}
	return secret
}

// GenerateActorToken creates a signed JWT for an actor. Tokens are normally
// minted by the identity service; this exists for local tooling and tests.
func GenerateActorToken(actorID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  actorID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// ExtractActorFromToken returns the actor id (subject) and role claims from a
// valid token string.
func ExtractActorFromToken(tokenString string) (string, string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	actorID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if actorID == "" || role == "" {
		return "", "", errors.New("token missing actor claims")
	}
	return actorID, role, nil
}
