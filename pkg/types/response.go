package types

// SuccessEnvelope wraps every successful payload response.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// MessageEnvelope wraps informational and error responses.
type MessageEnvelope struct {
	Message string `json:"message"`
}
