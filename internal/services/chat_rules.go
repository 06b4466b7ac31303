package services

import "strings"

// Keyword rule tables for the chat advisor. These drive both the safety
// filtering in front of the LLM and the deterministic fallback replies.

var redFlagKeywords = []string{
	"bleeding",
	"severe pain",
	"spreading fast",
	"pus",
	"fever",
	"burning badly",
}

var blockedKeywords = []string{
	"medicine",
	"dosage",
	"tablet",
	"cream name",
	"steroid",
}

var greetingKeywords = []string{
	"hi",
	"hello",
	"hey",
	"good morning",
	"good evening",
}

// ordered worst-first: a message mentioning both "spreading" and "pain" is
// severe, not moderate
var messageSeverityKeywords = []struct {
	level    string
	keywords []string
}{
	{"severe", []string{"severe", "worsening", "spreading", "very painful"}},
	{"moderate", []string{"itching", "redness", "pain"}},
	{"mild", []string{"slight", "small", "few", "light"}},
}

var forbiddenReplyTerms = []string{
	"tablet", "capsule", "dosage", "mg",
	"ointment", "cream", "antibiotic",
	"steroid", "medicine",
}

func containsAny(message string, words []string) bool {
	m := strings.ToLower(message)
	for _, w := range words {
		if strings.Contains(m, w) {
			return true
		}
	}
	return false
}

func CheckRedFlags(message string) bool { return containsAny(message, redFlagKeywords) }

func CheckBlockedContent(message string) bool { return containsAny(message, blockedKeywords) }

func CheckGreeting(message string) bool { return containsAny(message, greetingKeywords) }

// DetectMessageSeverity buckets free-text symptoms into
// mild/moderate/severe/unknown.
func DetectMessageSeverity(message string) string {
	for _, group := range messageSeverityKeywords {
		if containsAny(message, group.keywords) {
			return group.level
		}
	}
	return "unknown"
}

func detectIntent(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "explain") || strings.Contains(msg, "what is"):
		return "explain"
	case strings.Contains(msg, "daily") || strings.Contains(msg, "care") || strings.Contains(msg, "tips"):
		return "care"
	case strings.Contains(msg, "worry") || strings.Contains(msg, "danger") || strings.Contains(msg, "serious"):
		return "risk"
	case strings.Contains(msg, "doctor") || strings.Contains(msg, "specialist"):
		return "doctor"
	}
	return "general"
}

// sanitizeReply replaces any reply that mentions treatment or medication
// terms with a safe refusal.
func sanitizeReply(text string) string {
	if containsAny(text, forbiddenReplyTerms) {
		return "I can't provide treatment or medication details. " +
			"I can help with general care and guidance."
	}
	return text
}

func ruleBasedReply(disease, intent string) string {
	header := "I've reviewed your scan showing a possible " + disease + ".\n\n"

	switch intent {
	case "explain":
		return header + disease + " refers to changes in skin pigmentation.\n\n" +
			"Most cases are harmless, but monitoring changes in size, color, " +
			"or shape is important.\n\n" +
			"If anything changes rapidly, professional evaluation is advised."
	case "care":
		return header + "General daily skin care guidance:\n\n" +
			"• Keep skin clean and dry\n" +
			"• Avoid excessive sun exposure\n" +
			"• Do not scratch or irritate the area\n" +
			"• Observe for visible changes\n"
	case "risk":
		return header + "Warning signs to watch for:\n\n" +
			"• Rapid size change\n" +
			"• Uneven borders\n" +
			"• Color variation\n" +
			"• Bleeding or pain\n\n" +
			"Seek medical advice if any of these occur."
	case "doctor":
		return header + "If you're concerned or symptoms persist, " +
			"a dermatologist can provide proper evaluation."
	}
	return header + "Skin conditions can have many causes.\n\n" +
		"Monitoring and professional advice are recommended if unsure."
}
