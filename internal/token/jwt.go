package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

const (
	issuer     = "bookbites"
	typeAccess = "access"
)

// Claims represents JWT claims with token type and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a token manager issuing access tokens valid for ttl.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// GenerateAccessToken creates an access token for userID.
func (j *JWT) GenerateAccessToken(userID uuid.UUID) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID:    userID,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates and extracts the user ID from an access token.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("access token is invalid")
	}
	if claims.TokenType != typeAccess {
		return uuid.Nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	return claims.UserID, nil
}
