package dto

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=32"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

// ChangeEmailRequest asks for a verification link to be sent to a new address.
type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}
