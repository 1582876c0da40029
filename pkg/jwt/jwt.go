package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// DefaultExpiryMinutes matches the seven day session lifetime of the admin panel.
const DefaultExpiryMinutes = 7 * 24 * 60

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by every session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return secret(), nil
}

// GenerateToken signs an HS256 token for the user. expiryMinutes <= 0 selects the default.
func GenerateToken(userID, email, role string, expiryMinutes int) (string, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = DefaultExpiryMinutes
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
			Id:        GenerateSecureToken(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateSecureToken returns 32 random bytes, URL-safe base64 encoded.
func GenerateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
