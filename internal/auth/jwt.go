package auth

import (
	"errors"
	"time"

	"estate-backoffice/internal/config"
	"estate-backoffice/internal/models"
	"estate-backoffice/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identify a console session. The upstream API token never leaves the server.
type Claims struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// TTL is how long issued session tokens stay valid
func (j *JWTManager) TTL() time.Duration {
	return time.Duration(j.cfg.Session.ExpirationHours) * time.Hour
}

// GenerateToken creates a signed token for a console session
func (j *JWTManager) GenerateToken(session *models.Session) (string, error) {
	now := timeutil.Now()
	expirationTime := now.Add(j.TTL())
	if !session.ExpiresAt.IsZero() {
		expirationTime = session.ExpiresAt
	}

	claims := &Claims{
		SessionID: session.ID,
		Username:  session.Username,
		Role:      string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.Session.Issuer,
			Subject:   session.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.Session.Secret))
}

// ValidateToken verifies a session token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.Session.Secret), nil
	}, jwt.WithIssuer(j.cfg.Session.Issuer))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.SessionID == "" {
		return nil, errors.New("token has no session")
	}

	return claims, nil
}
