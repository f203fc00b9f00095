package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JwtKey is loaded from the environment at startup.
var JwtKey = []byte("your_secret_key")

// Claims are the JWT claims carried by customer and admin tokens.
type Claims struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Admin    bool   `json:"admin,omitempty"`
	jwt.StandardClaims
}

// GenerateToken signs a customer token carrying the user id and email.
func GenerateToken(id, email string) (string, error) {
	claims := &Claims{
		ID:    id,
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// GenerateAdminToken signs an admin console token.
func GenerateAdminToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		Admin:    true,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}
