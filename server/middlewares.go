package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/RASHMI-2005/hospital-management-system/colors"
)

type RequestContextKey string

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         200,
		}

		defer func() {
			responseStatus := colors.Green(responseWriter.Status)
			if responseWriter.Status >= 400 {
				responseStatus = colors.Red(responseWriter.Status)
			}

			logg.Info(
				r.Method, " ",
				r.RequestURI, " ",
				responseStatus, " ",
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))))
		}()

		next.ServeHTTP(responseWriter, r)
	})
}

// requireSessionMiddleware gates protected pages: without a valid,
// unexpired session the request is redirected to the login page.
func requireSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SESSION_COOKIE_NAME)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		identity, err := sessionStore.Get(cookie.Value)
		if err != nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), RequestContextKey("currentIdentity"), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
