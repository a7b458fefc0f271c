package types

import json "github.com/goccy/go-json"

type ReviewRequest struct {
	ContractData ContractRecord `json:"contractData"`
}

type ChatRequest struct {
	Message string          `json:"message" binding:"required"`
	Context json.RawMessage `json:"context"`
}

type SessionChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ClassifyRequest struct {
	JobDescription string `json:"jobDescription" binding:"required"`
}

// ActionRequest is a wizard action as clients send it. Older clients put
// the value under "payload".
type ActionRequest struct {
	Type    string          `json:"type" binding:"required"`
	Field   string          `json:"field"`
	Section string          `json:"section"`
	Value   json.RawMessage `json:"value"`
	Payload json.RawMessage `json:"payload"`
}
