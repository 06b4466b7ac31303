package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMessageSeverity(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"I have a slight rash on my arm", "mild"},
		{"just a small light spot", "mild"},
		{"constant itching and redness", "moderate"},
		{"It is spreading and very painful", "severe"},
		{"the spot is worsening every day", "severe"},
		{"hello there", "unknown"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectMessageSeverity(tc.message), tc.message)
	}
}

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"Can you explain what this means?", "explain"},
		{"what is melanoma", "explain"},
		{"any daily care tips?", "care"},
		{"should I worry about this", "risk"},
		{"is it dangerous", "risk"},
		{"do I need a doctor", "doctor"},
		{"ok thanks", "general"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, detectIntent(tc.message), tc.message)
	}
}

func TestCheckRedFlags(t *testing.T) {
	assert.True(t, CheckRedFlags("it started BLEEDING yesterday"))
	assert.True(t, CheckRedFlags("I have fever and a rash"))
	assert.False(t, CheckRedFlags("just a dry patch"))
}

func TestCheckBlockedContent(t *testing.T) {
	assert.True(t, CheckBlockedContent("which medicine should I take"))
	assert.True(t, CheckBlockedContent("what dosage of steroid"))
	assert.False(t, CheckBlockedContent("how do I keep the area clean"))
}

func TestCheckGreeting(t *testing.T) {
	assert.True(t, CheckGreeting("Hello!"))
	assert.True(t, CheckGreeting("good morning"))
}

func TestSanitizeReply(t *testing.T) {
	safe := "Keep the area clean and watch for changes."
	assert.Equal(t, safe, sanitizeReply(safe))

	blocked := sanitizeReply("Apply a steroid ointment twice daily.")
	assert.NotContains(t, blocked, "steroid")
	assert.Contains(t, blocked, "can't provide treatment or medication details")

	blocked = sanitizeReply("Take one 500 mg tablet.")
	assert.NotContains(t, blocked, "tablet")
}

func TestRuleBasedReplyMentionsDisease(t *testing.T) {
	for _, intent := range []string{"explain", "care", "risk", "doctor", "general"} {
		reply := ruleBasedReply("Melanocytic Nevi", intent)
		assert.Contains(t, reply, "Melanocytic Nevi", intent)
		assert.NotEmpty(t, reply, intent)
	}
}
