package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func jwtKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("gas-route-ledger-dev-secret")
}

// Claims is what rides inside the token: which route (or admin) this is.
type Claims struct {
	RouteID   string `json:"route_id"`
	RouteName string `json:"route_name"`
	Role      string `json:"role"` // 'route' or 'admin'
	jwt.RegisteredClaims
}

// GenerateToken signs a JWT that expires at the given instant. Route
// tokens expire at the next local midnight to match the daily session
// policy; admin tokens get a fixed 24h.
func GenerateToken(routeID, routeName, role string, expiresAt time.Time) (string, error) {
	claims := &Claims{
		RouteID:   routeID,
		RouteName: routeName,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken checks if a token is fake or expired
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
