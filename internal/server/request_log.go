package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/metrics"
)

const maxLogLineLength = 80

func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrw := wrapResponseWriter(w)

		next.ServeHTTP(wrw, r)

		s.logger.Info(formatRequestLine(r.Method, r.URL.Path, wrw.StatusCode(), time.Since(start), wrw.Body()))
	})
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrw := wrapResponseWriter(w)

		next.ServeHTTP(wrw, r)

		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, routeTemplate(r), strconv.Itoa(wrw.StatusCode())).
			Observe(time.Since(start).Seconds())
	})
}

// formatRequestLine renders "METHOD path status in Nms :: body", cut to
// maxLogLineLength runes with a trailing ellipsis.
func formatRequestLine(method, path string, status int, elapsed time.Duration, body []byte) string {
	line := fmt.Sprintf("%s %s %d in %dms", method, path, status, elapsed.Milliseconds())
	if len(body) > 0 {
		line += " :: " + string(body)
	}

	runes := []rune(line)
	if len(runes) > maxLogLineLength {
		line = string(runes[:maxLogLineLength-1]) + "…"
	}
	return line
}

// routeTemplate keeps metric labels bounded by using the matched pattern
// instead of the raw path.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
