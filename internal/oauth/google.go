package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"apthire/config"
	"apthire/internal/transport/dto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var ErrExchangeFailed = errors.New("oauth code exchange failed")

// googleUserInfo is the subset of the userinfo response we use.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleProvider exchanges authorization codes for Google profiles.
type GoogleProvider struct {
	config           *oauth2.Config
	userInfoEndpoint string
}

// NewGoogleProvider builds a provider from the OAuth settings.
func NewGoogleProvider(cfg config.OAuthConfig) *GoogleProvider {
	return NewGoogleProviderWithConfig(&oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}, cfg.GoogleUserInfoURL)
}

// NewGoogleProviderWithConfig lets callers point the provider at other endpoints.
func NewGoogleProviderWithConfig(oauthConfig *oauth2.Config, userInfoEndpoint string) *GoogleProvider {
	return &GoogleProvider{config: oauthConfig, userInfoEndpoint: userInfoEndpoint}
}

// AuthCodeURL returns the consent page URL together with the random state it embeds.
func (p *GoogleProvider) AuthCodeURL() (url string, state string, err error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate oauth state: %w", err)
	}
	state = base64.RawURLEncoding.EncodeToString(b)
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline), state, nil
}

// Exchange trades the code for a token and fetches the user's profile.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*dto.OAuthProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		log.Printf("GoogleProvider: Code exchange failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	client := p.config.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch user information: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: userinfo endpoint returned status %d: %s", ErrExchangeFailed, resp.StatusCode, string(body))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode user info: %v", ErrExchangeFailed, err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: user info is missing id or email", ErrExchangeFailed)
	}
	if !info.VerifiedEmail {
		log.Printf("GoogleProvider: Rejecting unverified email for account %s", info.ID)
		return nil, fmt.Errorf("%w: email is not verified by the provider", ErrExchangeFailed)
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.SplitN(info.Email, "@", 2)[0]
	}
	return &dto.OAuthProfile{
		ExternalID:  info.ID,
		Email:       info.Email,
		DisplayName: name,
	}, nil
}
