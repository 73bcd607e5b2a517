package middleware

import (
	"encoding/gob"
	"log/slog"
	"net/http"
	"time"

	"animehub/internal/web/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "animehub_session"

	sessionContextKey = "session"
	usernameKey       = "username"
	accountIDKey      = "account_id"
)

func init() {
	// flashes are kept as []interface{}, which gob does not know by default
	gob.Register([]interface{}{})
}

// SessionManager ties a logged-in identity and pending flash messages to a
// signed browser cookie.
type SessionManager struct {
	store  sessions.Store
	logger *slog.Logger
}

func NewSessionManager(secret []byte, maxAge time.Duration, secure bool, logger *slog.Logger) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	// the codecs check the signed timestamp, so a copied cookie stops working
	// after maxAge even if the browser would still send it
	store.MaxAge(store.Options.MaxAge)
	return &SessionManager{store: store, logger: logger}
}

// Middleware loads the request's session into the gin context. A cookie that
// fails to decode (rotated secret, tampering) starts a fresh anonymous session.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.store.Get(c.Request, sessionName)
		if err != nil {
			m.logger.Debug("discarding undecodable session cookie", "error", err)
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// Login marks the session as authenticated for account.
func (m *SessionManager) Login(c *gin.Context, account *models.Account) {
	sess := session(c)
	if sess == nil {
		return
	}
	sess.Values[usernameKey] = account.Username
	sess.Values[accountIDKey] = account.ID
}

// Logout returns the session to anonymous. Pending flashes survive.
func (m *SessionManager) Logout(c *gin.Context) {
	sess := session(c)
	if sess == nil {
		return
	}
	delete(sess.Values, usernameKey)
	delete(sess.Values, accountIDKey)
}

func session(c *gin.Context) *sessions.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*sessions.Session)
	return sess
}

// CurrentUser returns the authenticated username, if any.
func CurrentUser(c *gin.Context) (string, bool) {
	sess := session(c)
	if sess == nil {
		return "", false
	}
	username, ok := sess.Values[usernameKey].(string)
	return username, ok && username != ""
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, message string) {
	if sess := session(c); sess != nil {
		sess.AddFlash(message)
	}
}

// Flashes drains the queued messages.
func Flashes(c *gin.Context) []string {
	sess := session(c)
	if sess == nil {
		return nil
	}
	var out []string
	for _, f := range sess.Flashes() {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SaveSession writes the session cookie. It must run before the response
// body or status is written.
func SaveSession(c *gin.Context) error {
	sess := session(c)
	if sess == nil {
		return nil
	}
	return sess.Save(c.Request, c.Writer)
}
