package models

// DirectoryUser is the profile returned by the directory authenticator.
type DirectoryUser struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// LoginRequest holds credentials for authenticating against the directory.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidateRequest checks a token and username pair.
type ValidateRequest struct {
	Token    string `json:"token" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// ValidateResponse reports session validity. User and Groups are only present
// when the session is valid.
type ValidateResponse struct {
	Valid  bool           `json:"valid"`
	User   *DirectoryUser `json:"user,omitempty"`
	Groups []string       `json:"groups,omitempty"`
}
