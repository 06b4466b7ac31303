package services

import (
	"fmt"
	"log"
	"strings"

	"dermacare/internal/models"
)

const chatSystemPrompt = `You are DermaCare AI, a medical skin-health assistant.

STRICT RULES:
- You are NOT a doctor.
- You MUST NOT diagnose any disease.
- You MUST NOT prescribe medicines or treatments.
- You MUST NOT mention drug names or dosages.
- You provide ONLY general skin-care guidance.
- If symptoms sound severe, advise seeing a dermatologist or hospital.
- Use calm, simple, reassuring language.
- Be concise and structured.
- Ask at most ONE follow-up question.`

const chatDisclaimer = "This chatbot provides general information only and " +
	"is not a substitute for professional medical advice."

// LLMGateway is what the advisor needs from the hosted model.
type LLMGateway interface {
	Generate(prompt string) (string, error)
}

// ChatService produces safety-filtered replies: LLM first, deterministic
// rule-based fallback when the gateway fails.
type ChatService struct {
	llm LLMGateway
}

func NewChatService(llm LLMGateway) *ChatService {
	return &ChatService{llm: llm}
}

func (s *ChatService) Reply(req *models.ChatRequest) *models.ChatResponse {
	message := req.Message
	severity := req.Severity
	if severity == "" {
		severity = DetectMessageSeverity(message)
	}
	disease := req.Disease
	if disease == "" {
		disease = "this condition"
	}

	// scan-completion trigger replaces the user message with a guided prompt
	if req.Trigger == "scan_result" {
		message = fmt.Sprintf("A skin scan was completed.\n"+
			"Possible condition detected: %s.\n\n"+
			"Guide the user calmly and step-by-step.\n"+
			"Do NOT mention medicines.\n"+
			"Encourage selecting one next action.", disease)
	}

	reply, aiAvailable := s.generate(message, disease, severity)

	quickReplies := quickRepliesFor(severity)
	if !aiAvailable {
		quickReplies = fallbackQuickReplies
	}

	return &models.ChatResponse{
		Reply:        reply,
		Severity:     severity,
		QuickReplies: quickReplies,
		AIAvailable:  aiAvailable,
		Disclaimer:   chatDisclaimer,
	}
}

func (s *ChatService) generate(message, disease, severity string) (string, bool) {
	prompt := fmt.Sprintf(`%s

Possible condition (NOT confirmed): %s
Estimated severity: %s

User message:
%q

Respond with:
• Clear guidance
• Severity-based advice
• NO medicines
• ONE follow-up question`, chatSystemPrompt, disease, severity, message)

	if s.llm != nil {
		text, err := s.llm.Generate(prompt)
		if err == nil {
			return sanitizeReply(strings.TrimSpace(text)), true
		}
		log.Printf("[chat][llm] falling back to rules: %v", err)
	}

	intent := detectIntent(message)
	return ruleBasedReply(disease, intent), false
}

var fallbackQuickReplies = []string{
	"Explain this condition",
	"Daily skin care tips",
	"When to see a doctor",
}

func quickRepliesFor(severity string) []string {
	switch severity {
	case "mild":
		return []string{
			"Daily skin care tips",
			"Common triggers",
			"How to prevent worsening",
			"When should I worry?",
		}
	case "moderate":
		return []string{
			"How serious is this?",
			"Daily care tips",
			"Warning signs to watch",
			"Should I see a doctor?",
		}
	case "severe":
		return []string{
			"Is this dangerous?",
			"Emergency warning signs",
			"Find nearby dermatologist",
			"What should I do now?",
		}
	}
	return fallbackQuickReplies
}
