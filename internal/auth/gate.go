package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"golang.org/x/crypto/bcrypt"

	"pdfshelf/internal/config"
)

const (
	// SessionCookieName is the cookie carrying the opaque session id.
	SessionCookieName = "pdfshelf_session"

	isAdminKey = "is_admin"
)

// Gate is the session-based admin gate. It holds the configured static
// credentials and a server-side session store keyed by a client cookie.
// The only session state is a single admin flag.
type Gate struct {
	sessions     *session.Store
	email        string
	password     string
	passwordHash string
}

// NewGate constructs a Gate from the admin configuration.
func NewGate(cfg config.AdminConfig) *Gate {
	ttl := time.Duration(cfg.SessionTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	store := session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return &Gate{
		sessions:     store,
		email:        cfg.Email,
		password:     cfg.Password,
		passwordHash: cfg.PasswordHash,
	}
}

// Login checks the submitted credentials and, on match, marks the
// request's session as admin. Returns false on mismatch with no
// indication of which field was wrong.
func (g *Gate) Login(c *fiber.Ctx, email, password string) (bool, error) {
	if !g.match(email, password) {
		return false, nil
	}

	sess, err := g.sessions.Get(c)
	if err != nil {
		return false, err
	}
	sess.Set(isAdminKey, true)
	if err := sess.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// IsAdmin reports whether the request's session carries the admin flag.
func (g *Gate) IsAdmin(c *fiber.Ctx) bool {
	sess, err := g.sessions.Get(c)
	if err != nil {
		return false
	}
	flag, _ := sess.Get(isAdminKey).(bool)
	return flag
}

// Logout destroys the request's session entirely.
func (g *Gate) Logout(c *fiber.Ctx) error {
	sess, err := g.sessions.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// match compares credentials in constant time. When a bcrypt hash is
// configured it takes precedence over the plain password.
func (g *Gate) match(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(g.email)) == 1

	var passwordOK bool
	if g.passwordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	}

	return emailOK && passwordOK
}

// CookieKey derives the 32-byte base64 key the cookie encryption
// middleware expects from an arbitrary session secret.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
