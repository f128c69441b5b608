package models

// LoginRequest carries the credentials for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the profile for admin-gated user registration.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Role            string `json:"role"`
	BadgeNumber     string `json:"badgeNumber"`
	Department      string `json:"department"`
	Position        string `json:"position"`
	Phone           string `json:"phone"`
}

// ForgotPasswordRequest asks for a reset token by username.
type ForgotPasswordRequest struct {
	Username string `json:"username"`
}

// ResetPasswordRequest redeems a reset token for a new password.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateProfileRequest is the self-service profile patch. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	BadgeNumber *string `json:"badgeNumber"`
	Department  *string `json:"department"`
	Position    *string `json:"position"`
	Phone       *string `json:"phone"`
}

// VehicleLocationPatch is the body of PATCH /api/police-vehicles/{id}/location.
type VehicleLocationPatch struct {
	Location []float64 `json:"location"`
}

// VehicleStatusPatch is the body of PATCH /api/police-vehicles/{id}/status.
type VehicleStatusPatch struct {
	Status string `json:"status"`
}
