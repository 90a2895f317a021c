package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
	"github.com/vncsmyrnk/justask/internal/core/services"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	loggerKey contextKey = "logger"
)

func userIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// Authenticate requires a bearer token. A missing token is 401, a token that
// fails verification is 403.
func Authenticate(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, r, domain.ErrMissingToken)
				return
			}

			claims, err := auth.ParseToken(strings.TrimSpace(token))
			if err != nil {
				if services.IsExpired(err) {
					loggerFrom(r.Context()).Debug("Expired token")
				}
				writeError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs every request once it completes and exposes a
// request-scoped logger to handlers.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log.With(zap.String("request_id", middleware.GetReqID(r.Context())))
			ctx := context.WithValue(r.Context(), loggerKey, reqLog)

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", clientIP(r)),
			}

			switch {
			case status >= 500:
				reqLog.Error("Server error", fields...)
			case status >= 400:
				reqLog.Warn("Client error", fields...)
			default:
				reqLog.Debug("Request processed", fields...)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
