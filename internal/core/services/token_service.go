package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService validates bearer tokens issued by the hosted auth provider.
// Tokens are HS256-signed with a shared secret; the subject claim is the
// user id. This service never issues tokens; signup and login live with
// the provider.
type TokenService struct {
	secretKey []byte
	issuer    string
	userRepo  domain.UserRepository
}

func NewTokenService(secretKey, issuer string, userRepo domain.UserRepository) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		userRepo:  userRepo,
	}
}

// Validate checks the token's signature, issuer and subject, then makes
// sure a local user row exists for the subject, provisioning one from the
// email claim on first sight.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	if iss, ok := claims["iss"].(string); !ok || iss != s.issuer {
		return "", fmt.Errorf("invalid token issuer")
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid token subject")
	}

	email, _ := claims["email"].(string)

	provisionCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.ensureUser(provisionCtx, userID, email); err != nil {
		return "", err
	}

	return userID, nil
}

func (s *TokenService) ensureUser(ctx context.Context, userID, email string) error {
	_, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("user lookup failed: %w", err)
	}

	user, err := domain.NewUser(userID, email)
	if err != nil {
		return fmt.Errorf("cannot provision user from token claims: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("user provisioning failed: %w", err)
	}

	return nil
}
