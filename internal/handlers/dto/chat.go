package dto

type SendMessageRequest struct {
	Message   string `json:"message"`
	Reference string `json:"reference"`
	Type      string `json:"messageType"`
}
