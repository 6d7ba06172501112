// Package middleware provides HTTP middleware for wizard sessions.
package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// sessionIDKey is the context key for the current session ID.
const sessionIDKey ContextKey = "sessionID"

// DefaultCookieName names the cookie carrying the session token.
const DefaultCookieName = "internship_session"

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Issue(id uuid.UUID) (string, error)
	Parse(tokenString string) (uuid.UUID, error)
	TTL() time.Duration
}

// SessionOptions configures the session middleware.
type SessionOptions struct {
	CookieName string
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Session resolves the caller's session from its cookie. A missing, expired or
// tampered token starts a fresh session and sets a new cookie.
func Session(tokens TokenCodec, opts SessionOptions) func(http.Handler) http.Handler {
	name := opts.CookieName
	if name == "" {
		name = DefaultCookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessionFromCookie(r, name, tokens)
			if !ok {
				id = uuid.New()
				token, err := tokens.Issue(id)
				if err != nil {
					log.Printf("[session] failed to issue token: %v", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    token,
					Path:     "/",
					MaxAge:   int(tokens.TTL().Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

func sessionFromCookie(r *http.Request, name string, tokens TokenCodec) (uuid.UUID, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}
	id, err := tokens.Parse(cookie.Value)
	if err != nil {
		log.Printf("[session] discarding cookie: %v", err)
		return uuid.Nil, false
	}
	return id, true
}

// GetSessionID extracts the session ID from the request context.
func GetSessionID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(sessionIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("session ID not found in request context")
	}
	return id, nil
}

// WithSessionID returns a copy of ctx carrying id.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}
