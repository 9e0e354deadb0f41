package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// accountHeader carries the authenticated account id. Authentication itself
// happens upstream; this layer only reads the result.
const accountHeader = "X-Account-ID"

type contextKey string

const accountKey contextKey = "account"

func accountMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(accountHeader); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), accountKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// account returns the authenticated account id, empty for anonymous reads.
func account(r *http.Request) string {
	if id, ok := r.Context().Value(accountKey).(string); ok {
		return id
	}
	return ""
}

func requestTimeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		reqTime := time.Since(start)
		logrus.Infof("request time: %v %v: %v", r.Method, r.URL.Path, reqTime)
	})
}
