package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/GregMSThompson/chain-assistant/internal/response"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

type recovererMiddleware struct {
	ResponseHandler response.ResponseHandler
}

func NewRecovererMiddleware(rh response.ResponseHandler) *recovererMiddleware {
	return &recovererMiddleware{ResponseHandler: rh}
}

// Recoverer turns a handler panic into a JSON internal error.
// It must run after LoggerMiddleware so the panic is logged with request attributes.
func (m *recovererMiddleware) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("handler panicked",
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))
			m.ResponseHandler.HandleError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
