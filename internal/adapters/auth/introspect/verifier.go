package introspect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/ports/auth"
)

var ErrNotConfigured = errors.New("introspection endpoint not configured")

const (
	verifyPath          = "/v1/tokens/verify"
	defaultAPIKeyHeader = "X-Api-Key"
)

type Config struct {
	BaseURL string
	APIKey  string
	// Vacío => "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration
}

// Verifier implementa auth.CredentialVerifier delegando en un IAM externo.
type Verifier struct {
	client       *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = defaultAPIKeyHeader
	}
	return &Verifier{
		client:       c,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	if v.apiKey != "" {
		headers[v.apiKeyHeader] = v.apiKey
	}

	var out verifyResponse
	err := v.client.DoJSON(ctx, http.MethodPost, verifyPath, headers, verifyRequest{Token: token}, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, auth.ErrInvalidToken
		}
		return auth.Claims{}, fmt.Errorf("introspect verify: %w", err)
	}

	uid := strings.TrimSpace(out.UserID)
	if uid == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{UserID: uid, ExpiresAt: out.ExpiresAt}, nil
}
