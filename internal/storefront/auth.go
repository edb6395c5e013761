package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/joao-fontenele/modestwear-storefront/internal/backend"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrTermsNotAccepted    = errors.New("please agree to the terms and conditions")
)

type RegisterForm struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AgreeToTerms    bool   `json:"agree_to_terms"`
}

func (f RegisterForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return ErrCredentialsRequired
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !f.AgreeToTerms {
		return ErrTermsNotAccepted
	}
	return nil
}

// User returns the signed-in user's profile, or nil when signed out.
func (s *Session) User() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.Access != ""
}

func (s *Session) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	if s.remote == nil {
		return nil, ErrBackendUnavailable
	}

	result, err := s.remote.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	return s.signIn(result, "login"), nil
}

func (s *Session) Register(ctx context.Context, form RegisterForm) (json.RawMessage, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if s.remote == nil {
		return nil, ErrBackendUnavailable
	}

	result, err := s.remote.Register(ctx, strings.TrimSpace(form.Email), form.Password, strings.TrimSpace(form.FullName))
	if err != nil {
		return nil, err
	}
	return s.signIn(result, "register"), nil
}

// GoogleLogin signs in with a Google ID token credential.
func (s *Session) GoogleLogin(ctx context.Context, credential string) (json.RawMessage, error) {
	if credential == "" {
		return nil, ErrCredentialsRequired
	}
	if s.remote == nil {
		return nil, ErrBackendUnavailable
	}

	result, err := s.remote.GoogleLogin(ctx, credential)
	if err != nil {
		return nil, err
	}
	return s.signIn(result, "google"), nil
}

func (s *Session) signIn(result *backend.AuthResult, action string) json.RawMessage {
	s.mu.Lock()
	s.user = result.User
	s.tokens = result.Tokens
	s.mu.Unlock()

	s.logger.Info("user signed in", "method", action)
	s.notify(EventUser, action)
	return result.User
}

// accessToken returns the bearer token for calls that need a signed-in user.
func (s *Session) accessToken() (string, error) {
	if s.remote == nil {
		return "", ErrBackendUnavailable
	}

	s.mu.Lock()
	token := s.tokens.Access
	s.mu.Unlock()

	if token == "" {
		return "", backend.ErrNotSignedIn
	}
	return token, nil
}

// Profile fetches the signed-in user's profile from the backend.
func (s *Session) Profile(ctx context.Context) (json.RawMessage, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}
	return s.remote.Profile(ctx, token)
}

// OrderHistory lists the signed-in user's orders held by the backend.
func (s *Session) OrderHistory(ctx context.Context) (json.RawMessage, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}
	return s.remote.Orders(ctx, token)
}

// RemoteOutfits lists the outfits synced to the signed-in user's account.
func (s *Session) RemoteOutfits(ctx context.Context) (json.RawMessage, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}
	return s.remote.Outfits(ctx, token)
}

// Logout always clears local credentials. A failed remote logout is only
// logged.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	tokens := s.tokens
	s.tokens = backend.Tokens{}
	s.user = nil
	s.mu.Unlock()

	if s.remote != nil && tokens.Access != "" {
		if err := s.remote.Logout(ctx, tokens.Access, tokens.Refresh); err != nil {
			s.logger.Warn("remote logout failed", "error", err)
		}
	}

	s.notify(EventUser, "logout")
}

// Recommendations proxies the backend recommendation feeds.
func (s *Session) Recommendations(ctx context.Context, kind string) (json.RawMessage, error) {
	if s.remote == nil {
		return nil, ErrBackendUnavailable
	}

	s.mu.Lock()
	token := s.tokens.Access
	s.mu.Unlock()

	return s.remote.Recommendations(ctx, kind, token)
}
