package middleware

import (
	"context"

	jwtutil "cardsapi/app/jwt"
	"cardsapi/app/models"
)

func GetClaims(ctx context.Context) *jwtutil.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if c, ok := v.(*jwtutil.Claims); ok {
			return c
		}
	}
	return nil
}

// GetActor converts the request claims into the explicit actor the services
// operate as. Returns false when the request carries no claims.
func GetActor(ctx context.Context) (models.Actor, bool) {
	c := GetClaims(ctx)
	if c == nil {
		return models.Actor{}, false
	}
	return models.Actor{Email: c.Email, Role: models.UserRole(c.Role)}, true
}
