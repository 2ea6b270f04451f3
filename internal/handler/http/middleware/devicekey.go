package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/quanlycuahang/attendance-backend-go/internal/handler/http/response"
)

// DeviceKeyRequired guards the kiosk-facing endpoints with a shared
// device key sent in the X-Device-Key header.
func DeviceKeyRequired(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Device-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				response.Unauthorized(w, "Invalid device key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
