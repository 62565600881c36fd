package middleware

import (
	"net/http"
	"runtime/debug"

	"vet-clinic-api/internal/platform/httpx"
	"vet-clinic-api/internal/platform/logger"
)

// Recover reemplaza a chi/middleware.Recoverer: loguea el panic con el
// logger del request y responde con el sobre JSON.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			httpx.Fail(w, http.StatusInternalServerError, httpx.MsgInternal)
		}()

		next.ServeHTTP(w, r)
	})
}
