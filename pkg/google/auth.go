package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/klokku/occasions/internal/config"
	"github.com/klokku/occasions/internal/rest"
	"github.com/klokku/occasions/pkg/kv_store"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const (
	nonceKey = "google.auth.nonce"
	tokenKey = "google.auth.token"
)

var ErrUnauthenticated = errors.New("google account is not connected, authentication is required")

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

type authStatus struct {
	Authenticated bool `json:"authenticated"`
}

type GoogleAuth struct {
	store       kv_store.Store
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(store kv_store.Store, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/integrations/google/auth/callback",
		Scopes:       []string{calendar.CalendarEventsScope, calendar.CalendarReadonlyScope},
	}
	return &GoogleAuth{store: store, oauthConfig: oauthConfig}
}

// OAuthLogin returns the Google consent URL. The state carries the URL to return to after the
// callback and a nonce that the callback has to present.
func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	if err := g.store.Set(r.Context(), nonceKey, stateNonce); err != nil {
		log.Errorf("failed to store Google auth nonce: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication")
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	rest.WriteJSON(w, http.StatusOK, googleAuthRedirect{RedirectUrl: u})
}

func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	finalUrl, nonce, ok := strings.Cut(state, "|")
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "Invalid state")
		return
	}

	storedNonce, found, err := g.store.Get(r.Context(), nonceKey)
	if err != nil || !found || storedNonce != nonce {
		log.Warnf("Google auth callback with unknown nonce %s", nonce)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	token, err := g.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	if err := g.storeToken(r.Context(), token); err != nil {
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	if err := g.store.Delete(r.Context(), nonceKey); err != nil {
		log.Warnf("failed to remove used Google auth nonce: %v", err)
	}
	log.Debug("Successfully stored Google auth token for nonce: ", nonce)
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

func (g *GoogleAuth) IsAuthenticated(w http.ResponseWriter, r *http.Request) {
	token, err := g.getToken(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, authStatus{Authenticated: token != nil})
}

func (g *GoogleAuth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	if err := g.store.Delete(r.Context(), tokenKey); err != nil {
		log.Errorf("failed to delete Google auth token: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to handle Google authentication")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *GoogleAuth) storeToken(ctx context.Context, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		log.Errorf("unable to encode Google auth token: %v", err)
		return err
	}
	if err := g.store.Set(ctx, tokenKey, string(data)); err != nil {
		log.Errorf("unable to store Google auth token: %v", err)
		return err
	}
	return nil
}

// getToken returns nil without an error when no account is connected.
func (g *GoogleAuth) getToken(ctx context.Context) (*oauth2.Token, error) {
	data, found, err := g.store.Get(ctx, tokenKey)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth token: %w", err)
	}
	if !found {
		return nil, nil
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		log.Warnf("stored Google auth token is unreadable, authentication is required: %v", err)
		return nil, nil
	}
	return &token, nil
}

// getClient returns nil without an error when no account is connected. Refreshed tokens are
// stored again so the next client starts from them.
func (g *GoogleAuth) getClient(ctx context.Context) (*http.Client, error) {
	token, err := g.getToken(ctx)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	source := &persistingTokenSource{
		auth:   g,
		source: g.oauthConfig.TokenSource(context.Background(), token),
		last:   token.AccessToken,
	}
	return oauth2.NewClient(context.Background(), oauth2.ReuseTokenSource(token, source)), nil
}

type persistingTokenSource struct {
	mu     sync.Mutex
	auth   *GoogleAuth
	source oauth2.TokenSource
	last   string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := s.auth.storeToken(context.Background(), token); err != nil {
			log.Warnf("refreshed Google auth token was not stored: %v", err)
		}
	}
	return token, nil
}
