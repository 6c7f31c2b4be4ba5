package jwt

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
)

const Issuer = "storefront-service"

// Claims carries the user id under "userId". Older issuers wrote it under "id",
// so both are accepted when reading.
type Claims struct {
	LegacyID string `json:"id,omitempty"`
	UserID   string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

func GetJWTSecret() (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", customErrors.JWTSecretNotConfigured
	}
	return secret, nil
}

// GenerateToken signs a token for userID. A zero expiration yields a token
// without an exp claim.
func GenerateToken(userID string, expiration time.Duration) (string, error) {
	secret, err := GetJWTSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   Issuer,
		},
	}
	if expiration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(expiration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func ValidateToken(tokenString string) (*Claims, error) {
	secret, err := GetJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, customErrors.InvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.GetUserID() == "" {
		return nil, customErrors.InvalidToken
	}

	return claims, nil
}

// GetUserID returns the user id, preferring the legacy "id" claim when present.
func (c *Claims) GetUserID() string {
	if c.LegacyID != "" {
		return c.LegacyID
	}
	return c.UserID
}
