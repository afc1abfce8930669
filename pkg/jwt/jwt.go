package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingExpiry el token no trae claim exp.
var ErrMissingExpiry = errors.New("jwt: token sin expiración")

// Claims incluye los claims estándar JWT más los campos propios del backend de negocios.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int    `json:"id_usuario"`
	NegocioID int    `json:"id_negocio"`
	Role      string `json:"role"` // "ROOT" | "ADMIN" | "USER"
}

// Issue parámetros de emisión.
type Issue struct {
	Secret    string
	Issuer    string
	UserID    int
	NegocioID int
	Role      string
	IssuedAt  time.Time
	TTL       time.Duration
}

// Generate genera un token HS256 firmado.
func Generate(in Issue) (string, error) {
	if in.Secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := in.IssuedAt
	if now.IsZero() {
		now = time.Now()
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    in.Issuer,
			Subject:   fmt.Sprint(in.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(in.TTL)),
		},
		UserID:    in.UserID,
		NegocioID: in.NegocioID,
		Role:      in.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(in.Secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ExpiresAt decodifica el payload sin verificar la firma (la consola no conoce el secret)
// y devuelve el instante de expiración.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, fmt.Errorf("jwt: decodificar token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrMissingExpiry
	}
	return claims.ExpiresAt.Time, nil
}
