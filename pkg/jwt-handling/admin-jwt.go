package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a token enocodes
type AdminUserClaims struct {
	Username string `json:"username,omitempty"`
	IsOwner  bool   `json:"is_owner,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewAdminUserToken(expiresIn time.Duration, username string, isOwner bool, secretKey string) (tokenString string, err error) {
	claims := AdminUserClaims{
		username,
		isOwner,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateAdminUserToken(tokenString string, secretKey string) (claims *AdminUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*AdminUserClaims)
	valid = valid && token.Valid
	return
}
