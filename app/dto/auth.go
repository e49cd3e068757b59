package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse never carries the password back out.
type UserResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
