package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a creator session token encodes
type CreatorClaims struct {
	ID   string `json:"id,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewCreatorToken(expiresIn time.Duration, id string, role string, secretKey string) (tokenString string, err error) {
	claims := CreatorClaims{
		id,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateCreatorToken(tokenString string, secretKey string) (claims *CreatorClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &CreatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*CreatorClaims)
	valid = valid && token.Valid
	return
}
