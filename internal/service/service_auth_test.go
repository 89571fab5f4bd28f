package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
)

func newTestAuthService() AuthService {
	return NewAuthService(config.Auth{
		APIKey:        "super-secret-key",
		TokenSignKey:  "sign-key",
		TokenIssuer:   "voxlate",
		TokenDuration: time.Hour,
	}, logger.Nop())
}

func TestAuthService_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Auth
		want bool
	}{
		{
			name: "fully configured",
			cfg:  config.Auth{APIKey: "key", TokenSignKey: "sign"},
			want: true,
		},
		{
			name: "missing api key",
			cfg:  config.Auth{TokenSignKey: "sign"},
			want: false,
		},
		{
			name: "missing sign key",
			cfg:  config.Auth{APIKey: "key"},
			want: false,
		},
		{
			name: "empty",
			cfg:  config.Auth{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.cfg, logger.Nop())
			assert.Equal(t, tt.want, svc.Enabled())
		})
	}
}

func TestAuthService_IssueAndParseToken(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "super-secret-key")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, tokenSubject, parsed.ClientID)
}

func TestAuthService_IssueToken_WrongKey(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.IssueToken(context.Background(), "not-the-key")
	assert.ErrorIs(t, err, ErrWrongAPIKey)
}

func TestAuthService_IssueToken_Disabled(t *testing.T) {
	svc := NewAuthService(config.Auth{}, logger.Nop())

	_, err := svc.IssueToken(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAuthDisabled)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := NewAuthService(config.Auth{
		APIKey:        "super-secret-key",
		TokenSignKey:  "sign-key",
		TokenIssuer:   "voxlate",
		TokenDuration: -time.Minute,
	}, logger.Nop())
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "super-secret-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_ParseToken_ForeignSignKey(t *testing.T) {
	svc := newTestAuthService()
	other := NewAuthService(config.Auth{
		APIKey:        "super-secret-key",
		TokenSignKey:  "different-sign-key",
		TokenIssuer:   "voxlate",
		TokenDuration: time.Hour,
	}, logger.Nop())
	ctx := context.Background()

	token, err := other.IssueToken(ctx, "super-secret-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}
