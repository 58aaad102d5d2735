package auth

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret1"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret1"`
}

// UserPayload is the public view of a user embedded in auth responses.
type UserPayload struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Message string      `json:"message" example:"User registered successfully"`
	User    UserPayload `json:"user"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string      `json:"token" example:"9f2b1c4d6e8a0b1c2d3e4f5a6b7c8d9e0f1a2b3c"`
	User  UserPayload `json:"user"`
}

// MessageResponse is a generic {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message" example:"Logged out"`
}
