package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/utils"
	"github.com/voxlate/voxlate/models"
)

// tokenSubject is the "sub" claim stamped into every issued token. The API
// has a single shared credential, so there is no per-client identity yet.
const tokenSubject = "api-client"

type authService struct {
	cfg    config.Auth
	logger *logger.Logger
}

// NewAuthService builds an [AuthService] from the auth configuration.
// With an empty API key or sign key the service reports disabled and the
// jobs API is served without authentication.
func NewAuthService(cfg config.Auth, log *logger.Logger) AuthService {
	if cfg.APIKey == "" || cfg.TokenSignKey == "" {
		log.Warn().Msg("authentication is not configured, jobs API is open")
	}

	return &authService{
		cfg:    cfg,
		logger: log,
	}
}

func (s *authService) Enabled() bool {
	return s.cfg.APIKey != "" && s.cfg.TokenSignKey != ""
}

func (s *authService) IssueToken(_ context.Context, apiKey string) (models.Token, error) {
	if !s.Enabled() {
		return models.Token{}, ErrAuthDisabled
	}

	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.cfg.APIKey)) != 1 {
		return models.Token{}, ErrWrongAPIKey
	}

	token, err := utils.GenerateJWTToken(s.cfg.TokenIssuer, tokenSubject, s.cfg.TokenDuration, s.cfg.TokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

func (s *authService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	return token, nil
}
