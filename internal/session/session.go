// Package session identifies anonymous visitors with a secure cookie.
// The visitor ID namespaces per-visitor state in Valkey (wishlist and
// recently-viewed lists); no server-side payload is stored here.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	// CookieName is the name of the visitor cookie sent to the browser.
	CookieName = "gt_visitor"

	// DefaultTTL is how long the visitor cookie lives. Wishlist keys in
	// Valkey carry the same expiry so state and identity age out together.
	DefaultTTL = 30 * 24 * time.Hour

	// idLength is the byte length of the random visitor ID (16 bytes = 32 hex chars).
	idLength = 16
)

// VisitorID returns the visitor ID from the request cookie, minting a new
// one and setting the cookie if none is present. The empty string is never
// returned without an error.
func VisitorID(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && validID(cookie.Value) {
		return cookie.Value, nil
	}

	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("visitor id: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(DefaultTTL.Seconds()),
	})

	return id, nil
}

// Clear expires the visitor cookie. The visitor's Valkey state is left to
// age out via TTL.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// validID reports whether a cookie value looks like an ID we minted.
// Anything else is discarded and replaced rather than trusted as a key.
func validID(s string) bool {
	if len(s) != idLength*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// generateID creates a cryptographically random visitor identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
