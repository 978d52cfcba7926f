package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/Dosada05/racket-tournament-system/utils"
	"github.com/golang-jwt/jwt/v4"
)

var ErrTokenSigningFailed = errors.New("failed to sign access token")

const tokenTTL = 24 * time.Hour

// AuthService выпускает токены доступа для судей и администраторов.
// Учётных записей нет: общий ключ доступа сверяется с bcrypt-хешем из
// конфигурации, токен несёт роль и имя владельца.
type AuthService interface {
	IssueToken(ctx context.Context, input IssueTokenInput) (*TokenResult, error)
}

type IssueTokenInput struct {
	Passphrase string          `json:"passphrase"`
	Name       string          `json:"name"`
	Role       models.UserRole `json:"role"`
}

type TokenResult struct {
	Token     string          `json:"token"`
	Role      models.UserRole `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type authService struct {
	passphraseHash string
	jwtSecret      []byte
}

func NewAuthService(passphraseHash, jwtSecret string) AuthService {
	return &authService{
		passphraseHash: passphraseHash,
		jwtSecret:      []byte(jwtSecret),
	}
}

func (s *authService) IssueToken(_ context.Context, input IssueTokenInput) (*TokenResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, input.Role)
	}
	if !utils.CheckPasswordHash(input.Passphrase, s.passphraseHash) {
		return nil, ErrInvalidPassphrase
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"name": name,
		"role": string(input.Role),
		"exp":  expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenSigningFailed, err)
	}

	return &TokenResult{
		Token:     signed,
		Role:      input.Role,
		ExpiresAt: expiresAt,
	}, nil
}
