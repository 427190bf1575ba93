package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const defaultMaxBodyBytes = 100 << 10

// bodyLimitMiddleware buffers the request body up to the configured limit and
// rejects anything larger before it reaches the audit trail or a handler.
func (s *Server) bodyLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes()))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				s.logger.Warn("Request body too large",
					zap.String("path", r.URL.Path),
					zap.Int64("limit", tooLarge.Limit),
					zap.String("remote_addr", clientIP(r)),
				)
				respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) maxBodyBytes() int64 {
	if s.cfg.MaxBodyBytes > 0 {
		return s.cfg.MaxBodyBytes
	}
	return defaultMaxBodyBytes
}
