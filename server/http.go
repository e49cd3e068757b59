package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"cardsapi/global"
)

// StartHTTPServer starts listening in the background and returns the server
// so the caller can shut it down.
func StartHTTPServer(host string, port int, handler http.Handler) *http.Server {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			global.Logger.Error().Err(err).Msg("http server stopped")
		}
	}()
	return srv
}
