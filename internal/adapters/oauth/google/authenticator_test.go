package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/vncsmyrnk/justask/internal/core/domain"
)

func tokenServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "postmessage", r.PostForm.Get("redirect_uri"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAuthenticator(srv *httptest.Server, validate ValidateFunc) *Authenticator {
	return NewAuthenticator("client-id", "secret",
		WithEndpoint(oauth2.Endpoint{TokenURL: srv.URL, AuthStyle: oauth2.AuthStyleInParams}),
		WithValidator(validate),
	)
}

func TestExchange(t *testing.T) {
	srv := tokenServer(t, `{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"raw-id-token"}`, http.StatusOK)

	var gotToken, gotAudience string
	a := newTestAuthenticator(srv, func(ctx context.Context, raw, audience string) (*idtoken.Payload, error) {
		gotToken, gotAudience = raw, audience
		return &idtoken.Payload{
			Subject: "google-123",
			Claims: map[string]interface{}{
				"email":   "ada@example.com",
				"name":    "Ada",
				"picture": "https://example.com/ada.png",
			},
		}, nil
	})

	identity, err := a.Exchange(context.Background(), "the-code", "postmessage")
	require.NoError(t, err)
	assert.Equal(t, "raw-id-token", gotToken)
	assert.Equal(t, "client-id", gotAudience)
	assert.Equal(t, &domain.GoogleIdentity{
		Subject: "google-123",
		Email:   "ada@example.com",
		Name:    "Ada",
		Picture: "https://example.com/ada.png",
	}, identity)
}

func TestExchangeFailures(t *testing.T) {
	okValidator := func(ctx context.Context, raw, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Subject: "s", Claims: map[string]interface{}{"email": "a@b.c"}}, nil
	}

	tests := []struct {
		name     string
		body     string
		status   int
		validate ValidateFunc
	}{
		{
			name:     "token endpoint rejects the code",
			body:     `{"error":"invalid_grant"}`,
			status:   http.StatusBadRequest,
			validate: okValidator,
		},
		{
			name:     "no id token",
			body:     `{"access_token":"at","token_type":"Bearer"}`,
			status:   http.StatusOK,
			validate: okValidator,
		},
		{
			name:   "id token fails verification",
			body:   `{"access_token":"at","token_type":"Bearer","id_token":"raw"}`,
			status: http.StatusOK,
			validate: func(ctx context.Context, raw, audience string) (*idtoken.Payload, error) {
				return nil, errors.New("audience mismatch")
			},
		},
		{
			name:   "email claim missing",
			body:   `{"access_token":"at","token_type":"Bearer","id_token":"raw"}`,
			status: http.StatusOK,
			validate: func(ctx context.Context, raw, audience string) (*idtoken.Payload, error) {
				return &idtoken.Payload{Subject: "s", Claims: map[string]interface{}{}}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := tokenServer(t, tt.body, tt.status)
			a := newTestAuthenticator(srv, tt.validate)

			_, err := a.Exchange(context.Background(), "the-code", "postmessage")
			assert.ErrorIs(t, err, domain.ErrGoogleRejected)
			assert.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}
