// Package shared holds the wire contract between the client and the
// generation function service.
package shared

// GeneratePath is the route of the generation endpoint.
const GeneratePath = "/generate-thumbnail"

// GenerateRequest is the body of a generation call. Context may be empty.
type GenerateRequest struct {
	Topic   string `json:"topic"`
	Context string `json:"context"`
	Style   string `json:"style"`
}

// GenerateResponse carries either ImageURL or Error. A response with
// neither is malformed.
type GenerateResponse struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}
