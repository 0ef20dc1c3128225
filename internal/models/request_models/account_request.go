package request_models

type SignUpRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone" binding:"omitempty,min=10"`
	UserType  string `json:"user_type" binding:"omitempty,oneof=donor recipient both"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=50"`
	Phone     *string `json:"phone" binding:"omitempty,min=10"`
	Avatar    *string `json:"avatar"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	UserType  *string `json:"user_type" binding:"omitempty,oneof=donor recipient both"`
}

type RequestForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// AdminUpdateAccountRequest never touches credentials; password changes go
// through the reset flow only.
type AdminUpdateAccountRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=50"`
	Role      *string `json:"role" binding:"omitempty,oneof=user admin"`
	UserType  *string `json:"user_type" binding:"omitempty,oneof=donor recipient both"`
	IsActive  *bool   `json:"is_active"`
}
