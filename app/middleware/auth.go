package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "cardsapi/app/jwt"
	"cardsapi/app/tokens"
)

type ctxKey int

const ClaimsKey ctxKey = 1

type Auth struct {
	Signer   *jwtutil.Signer
	Denylist *tokens.Denylist
}

func (a *Auth) authenticate(r *http.Request) *jwtutil.Claims {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil
	}
	claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return nil
	}
	if a.Denylist.IsRevoked(r.Context(), claims.ID) {
		return nil
	}
	return claims
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Full authentication is required to access this resource."})
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := a.authenticate(r)
		if claims == nil {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
