package controllers

import (
	"encoding/json"
	"net/http"

	"cardsapi/app/dto"
	jwtutil "cardsapi/app/jwt"
	"cardsapi/app/middleware"
	"cardsapi/app/services"
	"cardsapi/app/tokens"
)

type AuthController struct {
	Users    *services.UserService
	Signer   *jwtutil.Signer
	Denylist *tokens.Denylist
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer, denylist *tokens.Denylist) *AuthController {
	return &AuthController{Users: users, Signer: signer, Denylist: denylist}
}

func (c *AuthController) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Malformed request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "Missing credentials.")
		return
	}
	u, err := c.Users.ValidateCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := c.Signer.Sign(u.Email, string(u.Role))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Could not issue token."})
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Malformed request body.")
		return
	}
	u, err := c.Users.RegisterUser(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.UserResponse{Email: u.Email, Role: string(u.Role)})
}

// Logout revokes the presented token for the remainder of its lifetime.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if claims.ExpiresAt != nil {
		if err := c.Denylist.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Could not revoke token."})
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
