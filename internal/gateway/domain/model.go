package domain

import "encoding/json"

// ChatRequest is the inbound body of POST /chat
type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ChatResponse wraps the downstream reply unchanged
type ChatResponse struct {
	Response json.RawMessage `json:"response"`
}

// ErrorResponse is returned on every non-success status
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RunRequest is the body sent to the downstream inference service
type RunRequest struct {
	Prompt string `json:"prompt"`
}
