package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	sessionKey     contextKey = "session"
	sessionSlotKey contextKey = "session_slot"
	requestIDKey   contextKey = "request_id"
)

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID int64
	Name   string
}

// sessionSlot lets an outer interceptor see the session resolved further in.
type sessionSlot struct {
	session Session
}

// WithSession returns a copy of ctx carrying the session. It also fills the
// slot left by LoggingInterceptor, if any.
func WithSession(ctx context.Context, s Session) context.Context {
	if slot, ok := ctx.Value(sessionSlotKey).(*sessionSlot); ok {
		slot.session = s
	}
	return context.WithValue(ctx, sessionKey, s)
}

// CurrentUser returns the session stored on ctx, if any.
func CurrentUser(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok && s.UserID != 0
}

// RequireAuth returns an interceptor that validates the bearer token and
// rejects requests without a valid one. Procedures listed in public skip
// the check but still get a session when a valid token is sent.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			session, err := sessionFromHeader(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				if skip[req.Spec().Procedure] {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithSession(ctx, session), req)
		}
	}
}

func sessionFromHeader(jwtManager *auth.JWTManager, header string) (Session, error) {
	if header == "" {
		return Session{}, auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return Session{}, auth.ErrInvalidToken
	}
	claims, err := jwtManager.Validate(token)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: claims.UserID, Name: claims.Name}, nil
}
