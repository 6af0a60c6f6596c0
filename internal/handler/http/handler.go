package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

// principal writes 401 and returns false when the request carries no principal.
func principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return auth.Principal{}, false
	}
	return p, true
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("Request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}
