package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"

	TokenTTL = 24 * time.Hour
)

// JWT claim names.
const (
	ClaimSubject = "sub"
	ClaimRole    = "role"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (string, error)
	ParseToken(tokenString string) (jwt.MapClaims, error)
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authService struct {
	adminUsername     string
	adminPasswordHash []byte
	jwtSecret         []byte
	now               func() time.Time
}

// NewAuthService checks a single configured admin account. passwordHash is a
// bcrypt hash.
func NewAuthService(adminUsername, passwordHash, jwtSecret string) AuthService {
	return &authService{
		adminUsername:     adminUsername,
		adminPasswordHash: []byte(passwordHash),
		jwtSecret:         []byte(jwtSecret),
		now:               time.Now,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	if input.Username == "" || input.Password == "" {
		return "", ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.adminUsername)) == 1

	err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to compare password hash: %w", err)
	}
	if !userOK {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		ClaimSubject: s.adminUsername,
		ClaimRole:    RoleAdmin,
		"exp":        now.Add(TokenTTL).Unix(),
		"iat":        now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
