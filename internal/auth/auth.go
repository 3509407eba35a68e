// Package auth provides JWT issuance and verification plus the gin
// middleware that gates mutation endpoints behind a bearer token.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const claimsContextKey = "auth.claims"

// ErrInvalidCredentials is returned by CheckCredentials on a failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims holds the token claims issued at login.
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service issues and validates HS256 tokens.
type Service struct {
	secret       []byte
	tokenTTL     time.Duration
	passwordHash string
}

// New creates an auth service. passwordHash is an optional bcrypt hash;
// when empty, any non-empty credentials are accepted at login.
func New(secret string, tokenTTLMinutes int, passwordHash string) *Service {
	return &Service{
		secret:       []byte(secret),
		tokenTTL:     time.Duration(tokenTTLMinutes) * time.Minute,
		passwordHash: passwordHash,
	}
}

// CheckCredentials verifies a login attempt. Both fields must be non-empty;
// the password is checked against the configured bcrypt hash when one is set.
func (s *Service) CheckCredentials(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidCredentials)
	}
	if s.passwordHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken creates a signed token for the given username.
func (s *Service) IssueToken(username string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		UserID:   username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "artera",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// TokenTTL returns the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

// ValidateToken parses and verifies a token string.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Middleware returns a gin middleware that requires a valid bearer token
// and stores the claims in the request context.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c.Request)
		if tokenStr == "" {
			unauthorized(c, "missing authentication token")
			return
		}

		claims, err := s.ValidateToken(tokenStr)
		if err != nil {
			unauthorized(c, "invalid authentication credentials")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFrom extracts the authenticated claims from the gin context, or nil.
func ClaimsFrom(c *gin.Context) *Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
