package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// newFakeGoogle serves a token endpoint that accepts "good-code" and a
// userinfo endpoint returning info.
func newFakeGoogle(t *testing.T, info map[string]any, userInfoStatus int) (*httptest.Server, *GoogleProvider) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(userInfoStatus)
		_ = json.NewEncoder(w).Encode(info)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	provider := NewGoogleProviderWithConfig(&oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, srv.URL+"/userinfo")
	return srv, provider
}

func TestGoogleProvider_Exchange(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		info      map[string]any
		status    int
		wantErr   bool
		wantName  string
		wantExtID string
	}{
		{
			name:      "Success",
			code:      "good-code",
			info:      map[string]any{"id": "g-1", "email": "asha@example.com", "verified_email": true, "name": "Asha Rao"},
			status:    http.StatusOK,
			wantName:  "Asha Rao",
			wantExtID: "g-1",
		},
		{
			name:      "Success - name falls back to email local part",
			code:      "good-code",
			info:      map[string]any{"id": "g-2", "email": "bo@example.com", "verified_email": true},
			status:    http.StatusOK,
			wantName:  "bo",
			wantExtID: "g-2",
		},
		{
			name:    "Error - bad code",
			code:    "bad-code",
			info:    map[string]any{},
			status:  http.StatusOK,
			wantErr: true,
		},
		{
			name:    "Error - userinfo failure",
			code:    "good-code",
			info:    map[string]any{},
			status:  http.StatusInternalServerError,
			wantErr: true,
		},
		{
			name:    "Error - unverified email",
			code:    "good-code",
			info:    map[string]any{"id": "g-4", "email": "victim@corp.example", "verified_email": false, "name": "Eve"},
			status:  http.StatusOK,
			wantErr: true,
		},
		{
			name:    "Error - verified flag absent",
			code:    "good-code",
			info:    map[string]any{"id": "g-5", "email": "victim@corp.example"},
			status:  http.StatusOK,
			wantErr: true,
		},
		{
			name:    "Error - missing email",
			code:    "good-code",
			info:    map[string]any{"id": "g-3"},
			status:  http.StatusOK,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, provider := newFakeGoogle(t, tt.info, tt.status)

			profile, err := provider.Exchange(context.Background(), tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrExchangeFailed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExtID, profile.ExternalID)
			assert.Equal(t, tt.wantName, profile.DisplayName)
		})
	}
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	_, provider := newFakeGoogle(t, nil, http.StatusOK)

	first, state1, err := provider.AuthCodeURL()
	require.NoError(t, err)
	_, state2, err := provider.AuthCodeURL()
	require.NoError(t, err)

	assert.NotEqual(t, state1, state2)
	u, err := url.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, state1, u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
}
