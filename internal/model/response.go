package model

// ErrorResponse is the wire shape of every failed request. Code is machine
// readable so clients can branch without parsing the message.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type AuthResponse struct {
	Message string   `json:"message,omitempty"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

type DeletedResponse struct {
	Message string `json:"message"`
}
