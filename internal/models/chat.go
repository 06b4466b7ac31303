package models

type ChatRequest struct {
	Message  string `json:"message" binding:"required"`
	Disease  string `json:"disease"`
	Severity string `json:"severity"`
	Trigger  string `json:"trigger"`
}

type ChatResponse struct {
	Reply        string   `json:"reply"`
	Severity     string   `json:"severity"`
	QuickReplies []string `json:"quick_replies"`
	AIAvailable  bool     `json:"ai_available"`
	Disclaimer   string   `json:"disclaimer"`
}
