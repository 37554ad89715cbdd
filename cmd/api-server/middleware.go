package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/tomasen/realip"

	"github.com/avoronov/cadscreen/internal/ctxstore"
	"github.com/avoronov/cadscreen/internal/model"
	"github.com/avoronov/cadscreen/internal/response"
	"github.com/avoronov/cadscreen/internal/session"
)

const (
	_traceIDKey   = ctxstore.Key("traceId")
	_principalKey = ctxstore.Key("principal")
)

func (app *application) traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := genTraceID()
		ctx := ctxstore.With(r.Context(), _traceIDKey, tid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
			tid    = ctxstore.MustFrom[string](r.Context(), _traceIDKey)
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto, _traceIDKey.String(), tid)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		app.serverLogger().Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

func (app *application) CORS(next http.Handler) http.Handler {
	return cors.AllowAll().Handler(next)
}

// authenticate resolves the session cookie into a Principal when it carries a
// valid, unexpired signature. A missing or bad token is not an error here;
// the request simply proceeds unauthenticated and the gates decide.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err == nil {
			principal, err := app.sessions.Verify(cookie.Value)
			if err == nil {
				ctx := ctxstore.With(r.Context(), _principalKey, principal)
				r = r.WithContext(ctx)
			}
		}

		next.ServeHTTP(w, r)
	})
}

func principalFrom(r *http.Request) (session.Principal, bool) {
	return ctxstore.From[session.Principal](r.Context(), _principalKey)
}

// requireAuth admits any authenticated caller regardless of role.
func (app *application) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := principalFrom(r); !ok {
			app.authenticationRequired(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireRole admits only authenticated callers holding the given role. A
// valid session with the wrong role gets the exact same signal as no session
// at all, so the response never reveals which roles exist.
func (app *application) requireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := principalFrom(r)
			if !ok || principal.Role != role {
				app.authenticationRequired(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (app *application) requestLogger(r *http.Request) *slog.Logger {
	logger := app.logger
	if tid, ok := ctxstore.From[string](r.Context(), _traceIDKey); ok {
		logger = logger.With(_traceIDKey.String(), tid)
	}
	return logger
}

func genTraceID() string {
	id, _ := uuid.NewRandom()
	return id.String()
}
