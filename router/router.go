package router

import (
	"net/http"

	"cardsapi/app/controllers"
	"cardsapi/app/middleware"
)

func NewRouter(cards *controllers.CardController, auth *controllers.AuthController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("POST /cardsapi/authenticate", auth.Authenticate)
	mux.HandleFunc("POST /cardsapi/register", auth.Register)

	// authenticated
	mux.Handle("POST /cardsapi/logout", mw.RequireAuth(http.HandlerFunc(auth.Logout)))
	mux.Handle("POST /cardsapi/card", mw.RequireAuth(http.HandlerFunc(cards.Post)))
	mux.Handle("GET /cardsapi/card", mw.RequireAuth(http.HandlerFunc(cards.AggregateGet)))
	mux.Handle("GET /cardsapi/card/{id}", mw.RequireAuth(http.HandlerFunc(cards.Get)))
	mux.Handle("PUT /cardsapi/card/{id}", mw.RequireAuth(http.HandlerFunc(cards.Put)))
	mux.Handle("PATCH /cardsapi/card/{id}", mw.RequireAuth(http.HandlerFunc(cards.Patch)))
	mux.Handle("DELETE /cardsapi/card/{id}", mw.RequireAuth(http.HandlerFunc(cards.Delete)))

	return mux
}
