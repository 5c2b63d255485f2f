package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vanguardgg/sitecms/internal/api/apierr"
	"github.com/vanguardgg/sitecms/internal/middleware"
)

// Recovery turns a panicking API handler into a 500 INTERNAL_ERROR body.
// The request id is echoed in a header so the failure can be found in the logs.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, writePanicResponse)
}

func writePanicResponse(w http.ResponseWriter, r *http.Request, _ any) {
	if id := chimw.GetReqID(r.Context()); id != "" {
		w.Header().Set(chimw.RequestIDHeader, id)
	}
	apierr.WriteError(w, apierr.NewInternalError())
}
