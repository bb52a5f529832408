// Package httputils provides utilities for HTTP requests.
package httputils

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// httputilsContextKey is the key for the values httputils puts into the context.
type httputilsContextKey string

const (
	// contextKeySession is the key for the session ID in the context.
	contextKeySession httputilsContextKey = "httputils:session"
)

// CookieSession is the cookie that carries the session ID.
const CookieSession = "sqlquest_session"

// SessionOptions configures the session cookie.
type SessionOptions struct {
	// MaxAge is the lifetime of the cookie in seconds.
	MaxAge int
	Secure bool
}

// SessionMiddleware puts the session ID from the session cookie into the
// context, issuing a new one when the cookie is missing or malformed.
//
// The cookie is refreshed on every request.
func SessionMiddleware(opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CookieSession)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(
			/* name */ CookieSession,
			/* value */ sessionID,
			/* maxAge */ opts.MaxAge,
			/* path */ "/",
			/* domain */ "",
			/* secure */ opts.Secure,
			/* httpOnly */ true,
		)

		newCtx := WithSessionID(c.Request.Context(), sessionID)
		c.Request = c.Request.WithContext(newCtx)
		c.Next()
	}
}

// WithSessionID adds the session ID to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextKeySession, sessionID)
}

// GetSessionID returns the session ID from the context.
//
// It returns false when the request did not go through SessionMiddleware.
func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(contextKeySession).(string)
	return sessionID, ok && sessionID != ""
}

// IsFragmentRequest reports whether the request was issued by htmx and
// expects an HTML fragment instead of a full page.
func IsFragmentRequest(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
