package analysis

import "strings"

// BuildPrompt assembles the instruction sent to the model backend. The
// shape instruction is strict on purpose; the parser still treats the
// reply as untrusted.
func BuildPrompt(text, context string) string {
	var b strings.Builder
	b.WriteString("You are TraderMind, a trading psychology assistant.\n")
	b.WriteString("Analyze the trading session journal entry below.\n")
	b.WriteString("Respond with ONLY a JSON object containing exactly these keys:\n")
	b.WriteString(`  "emotions": list of short emotion labels,` + "\n")
	b.WriteString(`  "rules_broken": list of short trading-rule violation labels,` + "\n")
	b.WriteString(`  "biases": list of short cognitive-bias labels,` + "\n")
	b.WriteString(`  "advice": one short paragraph of actionable advice.` + "\n")
	b.WriteString("Do not include markdown or commentary.\n\n")
	b.WriteString("Journal entry:\n")
	b.WriteString(strings.TrimSpace(text))
	if ctx := strings.TrimSpace(context); ctx != "" {
		b.WriteString("\n\nSession context:\n")
		b.WriteString(ctx)
	}
	return b.String()
}

// BuildChatPrompt wraps a free-form chat message in the assistant's
// system framing.
func BuildChatPrompt(message string) string {
	return "You are TraderMind, a trading psychology assistant.\nUser said: " + strings.TrimSpace(message)
}
