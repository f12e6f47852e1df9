package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

func IsValidRole(role Role) bool {
	switch role {
	case RoleCustomer, RoleSeller:
		return true
	default:
		return false
	}
}

// User is the cached profile returned by the auth service. The role is
// immutable after registration as far as this client is concerned.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `json:"role"`
}

// Registration carries the register form. Password confirmation is checked
// client-side before any request leaves the process.
type Registration struct {
	Username             string `json:"username" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
	FirstName            string `json:"first_name" validate:"required"`
	LastName             string `json:"last_name" validate:"required"`
	PhoneNumber          string `json:"phone_number" validate:"required"`
	Role                 Role   `json:"role"`
}
