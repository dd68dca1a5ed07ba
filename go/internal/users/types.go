package users

// GetOrCreateUserRequest represents the data needed to fetch or create a user by name
type GetOrCreateUserRequest struct {
	Name string `json:"name" validate:"required"`
}
