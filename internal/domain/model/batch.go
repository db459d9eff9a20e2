package model

// BatchItem is the outcome of one name inside a batch request.
type BatchItem struct {
	Name       string      `json:"name"`
	Pending    bool        `json:"pending"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// BatchStatus summarizes the progress of a batch request.
type BatchStatus struct {
	BatchID   string      `json:"batch_id"`
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Done      bool        `json:"done"`
	Items     []BatchItem `json:"items"`
}
