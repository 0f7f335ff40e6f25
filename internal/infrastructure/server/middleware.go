package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

type contextKey struct{}

// requestIDMiddleware tags every request with an id, reusing the caller's
// when present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), contextKey{}, id)
		requestLogger(ctx).
			WithFields(logger.Fields{"method": r.Method, "path": r.URL.Path}).
			Debug("Handling request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// corsMiddleware allows any origin, like the browser front-end expects.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(ctx context.Context) *logger.Entry {
	id, _ := ctx.Value(contextKey{}).(string)
	return logger.WithField("request_id", id)
}
