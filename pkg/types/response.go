package types

// Notice is a user-facing message produced by a quote workflow.
type Notice struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

type SuccessEnvelope struct {
	Data    any      `json:"data"`
	Notices []Notice `json:"notices,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error   APIError `json:"error"`
	Notices []Notice `json:"notices,omitempty"`
}
