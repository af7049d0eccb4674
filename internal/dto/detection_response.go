package dto

// DetectionResponse is the payload of POST /api/detect.
type DetectionResponse struct {
	Status  string `json:"status"` // "ok" or "error"
	Result  string `json:"result,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}
