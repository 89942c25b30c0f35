package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const PermissionAdmin = "admin"

var ErrInvalidClaims = errors.New("invalid token claims")

type Claims struct {
	Subject     string   `json:"sub"`
	Permissions []string `json:"permissions"`
	Exp         int64    `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) error {
	mapClaims, ok := jwtClaims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidClaims
	}
	permissions := []string{}
	if raw, ok := mapClaims["permissions"].([]interface{}); ok {
		for _, perm := range raw {
			if s, ok := perm.(string); ok {
				permissions = append(permissions, s)
			}
		}
	}
	claims.Permissions = permissions
	claims.Subject, _ = mapClaims["sub"].(string)
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return ErrInvalidClaims
	}
	claims.Exp = int64(exp)
	return nil
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func CreateToken(secret string, subject string, permissions []string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub":         subject,
			"permissions": permissions,
			"exp":         time.Now().Add(ttl).Unix(),
		})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(secret string, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidClaims
	}
	claims := &Claims{}
	if err := claims.FromJWTClaims(token.Claims); err != nil {
		return nil, err
	}
	if err := claims.Valid(); err != nil {
		return nil, err
	}
	return claims, nil
}
