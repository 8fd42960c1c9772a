package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"DOIT_BACK-END/internal/logging"
	"DOIT_BACK-END/internal/utils"
)

// Recoverer turns a handler panic into the generic 500 body.
func Recoverer(next http.Handler, log logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rv := recover()
			if rv == nil {
				return
			}
			if rv == http.ErrAbortHandler {
				panic(rv)
			}
			log.Error(r.Context(), "panic recovered",
				"panic", fmt.Sprint(rv),
				"stack", string(debug.Stack()),
			)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, utils.MsgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}
