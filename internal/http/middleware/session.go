package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-minitwit/internal/domain"
)

const (
	sessionUserKey  = "user_id"
	viewerKey       = "viewer"
	sessionDirtyKey = "session_dirty"
)

// Viewer is the signed-in user of a page-flow request. It is resolved once
// per request by LoadViewer and read with ViewerFrom.
type Viewer struct {
	UserID   uint
	Username string
	Email    string
}

// UserLoader resolves a session's user id.
type UserLoader interface {
	UserByID(ctx context.Context, id uint) (*domain.User, error)
}

// Sessions installs the signed cookie session store.
func Sessions(name, secret string, secure bool) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(name, store)
}

// LoadViewer resolves the session's user into a *Viewer stored on the Gin
// context. A session pointing at a user that no longer exists is cleared on
// the next save; lookup failures leave the request anonymous.
func LoadViewer(users UserLoader, notFound error) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, ok := sessionUserID(sess.Get(sessionUserKey))
		if !ok {
			c.Next()
			return
		}
		u, err := users.UserByID(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(viewerKey, &Viewer{UserID: u.UserID, Username: u.Username, Email: u.Email})
			c.Set(userIDKey, strconv.FormatUint(uint64(u.UserID), 10))
		case errors.Is(err, notFound):
			sess.Delete(sessionUserKey)
			markDirty(c)
		default:
			LoggerFrom(c).Error().Err(err).Uint("user_id", id).Msg("load session user")
		}
		c.Next()
	}
}

// sessionUserID accepts the integer kinds a decoded session value may hold.
func sessionUserID(v any) (uint, bool) {
	switch n := v.(type) {
	case uint:
		return n, n > 0
	case int:
		return uint(n), n > 0
	case int64:
		return uint(n), n > 0
	case uint64:
		return uint(n), n > 0
	}
	return 0, false
}

// ViewerFrom returns the signed-in user, or nil for anonymous requests.
func ViewerFrom(c *gin.Context) *Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(*Viewer); ok {
			return viewer
		}
	}
	return nil
}

// RequireViewer rejects anonymous requests with 401.
func RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ViewerFrom(c) == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// Session changes are staged on the request and written by SaveSession,
// so a response carries at most one Set-Cookie for the session.

// markDirty records that the session has unsaved changes.
func markDirty(c *gin.Context) { c.Set(sessionDirtyKey, true) }

// SignIn binds the session to userID.
func SignIn(c *gin.Context, userID uint) {
	sessions.Default(c).Set(sessionUserKey, userID)
	markDirty(c)
}

// SignOut drops the session's user. Signing out twice is fine.
func SignOut(c *gin.Context) {
	sessions.Default(c).Delete(sessionUserKey)
	markDirty(c)
}

// AddFlash queues a one-time message for the next rendered page.
func AddFlash(c *gin.Context, msg string) {
	sessions.Default(c).AddFlash(msg)
	markDirty(c)
}

// SaveSession writes the staged changes, if any. Call it once, before the
// response is written.
func SaveSession(c *gin.Context) error {
	if !c.GetBool(sessionDirtyKey) {
		return nil
	}
	if err := sessions.Default(c).Save(); err != nil {
		return err
	}
	c.Set(sessionDirtyKey, false)
	return nil
}

// Flashes consumes the queued messages and saves the session together with
// any other staged change. Call it before the response body is written.
func Flashes(c *gin.Context) []string {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) > 0 {
		markDirty(c)
	}
	if err := SaveSession(c); err != nil {
		LoggerFrom(c).Warn().Err(err).Msg("save session")
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
