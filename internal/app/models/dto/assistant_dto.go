package dto

// AskRequest is the payload for the AI assistant. Context optionally
// carries client-extracted document text that scopes the question.
type AskRequest struct {
	Question string `json:"question" binding:"required,max=4000"`
	Context  string `json:"context" binding:"omitempty,max=60000"`
}

// AskResponse carries the single full answer; there is no streaming.
type AskResponse struct {
	Answer string `json:"answer"`
}
