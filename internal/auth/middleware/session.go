package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/skillgateway/backend/internal/models"
)

// SessionCookieName is the signed cookie carrying the session id
const SessionCookieName = "sg_session"

type contextKey string

const (
	userKey      contextKey = "sessionUser"
	sessionIDKey contextKey = "sessionID"
)

// SessionReader resolves a session id into the stored user snapshot
type SessionReader interface {
	// Get retrieves the session user for a session id.
	//
	// "ctx" is the context for the request.
	// "sid" is the session id from the cookie.
	//
	// Returns the session user and an error if the session is unknown or expired.
	Get(ctx context.Context, sid string) (*models.SessionUser, error)
}

// SessionMiddleware requires a valid login session. The signed cookie carries
// only the session id; the user snapshot is loaded from the session store.
func SessionMiddleware(cookies *sessions.CookieStore, store SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, sid := resolveSession(r, cookies, store)
			if user == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"not logged in"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), user, sid)))
		})
	}
}

// OptionalSessionMiddleware attaches the session user when one exists and
// lets the request through either way
func OptionalSessionMiddleware(cookies *sessions.CookieStore, store SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if user, sid := resolveSession(r, cookies, store); user != nil {
				ctx = withSession(ctx, user, sid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveSession reads the session id from the signed cookie and loads the
// user snapshot. Returns nils when there is no valid session.
func resolveSession(r *http.Request, cookies *sessions.CookieStore, store SessionReader) (*models.SessionUser, string) {
	sid := ReadSessionID(r, cookies)
	if sid == "" {
		return nil, ""
	}

	user, err := store.Get(r.Context(), sid)
	if err != nil {
		return nil, ""
	}

	return user, sid
}

func withSession(ctx context.Context, user *models.SessionUser, sid string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, sessionIDKey, sid)
}

// GetUser retrieves the session user from context
func GetUser(ctx context.Context) (*models.SessionUser, bool) {
	user, ok := ctx.Value(userKey).(*models.SessionUser)
	return user, ok
}

// GetUserID retrieves the session user id from context
func GetUserID(ctx context.Context) (int, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// GetSessionID retrieves the session id from context
func GetSessionID(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDKey).(string)
	return sid, ok
}

// ReadSessionID extracts the session id from the signed cookie
func ReadSessionID(r *http.Request, cookies *sessions.CookieStore) string {
	cookie, err := cookies.Get(r, SessionCookieName)
	if err != nil {
		return ""
	}
	sid, _ := cookie.Values["sid"].(string)
	return sid
}

// SetSessionCookie writes the session id into the signed cookie
func SetSessionCookie(w http.ResponseWriter, r *http.Request, cookies *sessions.CookieStore, sid string) error {
	cookie, _ := cookies.Get(r, SessionCookieName)
	cookie.Values["sid"] = sid
	return cookie.Save(r, w)
}

// ClearSessionCookie expires the signed cookie
func ClearSessionCookie(w http.ResponseWriter, r *http.Request, cookies *sessions.CookieStore) {
	cookie, _ := cookies.Get(r, SessionCookieName)
	cookie.Options.MaxAge = -1
	delete(cookie.Values, "sid")
	_ = cookie.Save(r, w)
}
