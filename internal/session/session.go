// Package session provides Redis-backed HTTP session management.
// Sessions are identified by an HMAC-signed cookie and stored as JSON in
// Redis with automatic TTL expiry. The TTL is absolute: updates keep the
// original expiry, so a session ends 24 hours after it was created no
// matter how active it is.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "ink_session"

	// DefaultTTL is how long a session lives in Redis before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Redis to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload stored in Redis.
type Data struct {
	// Authenticated is true once the admin credential has been verified.
	Authenticated bool `json:"authenticated"`

	// ReturnTo records the path an unauthenticated request was aiming for,
	// so the login flow can redirect back to it exactly once.
	ReturnTo string `json:"return_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Store manages session lifecycle in Redis. Cookies carry the session ID
// signed with the configured secret; a cookie with a bad signature is
// treated as no session.
type Store struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Redis client.
// secret signs the session cookie; secure marks cookies HTTPS-only.
func NewStore(client *redis.Client, secret string, secure bool) *Store {
	return &Store{
		client: client,
		secret: []byte(secret),
		ttl:    DefaultTTL,
		secure: secure,
	}
}

// Create generates a new session, stores it in Redis, and sets the signed
// session cookie on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.CreatedAt = time.Now()

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.sign(id),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data from Redis using the signed session ID from
// the request cookie. Returns nil if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id, ok := s.sessionID(r)
	if !ok {
		return nil, nil // No cookie or bad signature = no session.
	}

	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil // Session expired or doesn't exist.
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	return &data, nil
}

// Update replaces the session data in Redis without changing the session
// ID or cookie. The remaining TTL is kept — the 24h window is absolute,
// not extended by activity.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	id, ok := s.sessionID(r)
	if !ok {
		return fmt.Errorf("session update: no valid cookie")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("session update: %w", err)
	}

	return nil
}

// Destroy removes the session from Redis and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := s.sessionID(r)
	if !ok {
		return nil // No cookie, nothing to destroy.
	}

	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return nil
}

// sessionID extracts and verifies the session ID from the request cookie.
func (s *Store) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}

	id, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.signature(id))) {
		return "", false
	}
	return id, true
}

// sign returns the cookie value for a session ID: "id.signature".
func (s *Store) sign(id string) string {
	return id + "." + s.signature(id)
}

func (s *Store) signature(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
