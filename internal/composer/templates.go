package composer

import "github.com/lenoxlabs/lenox/internal/intent"

// instruction is the voice each intent puts the model in. The general
// entry doubles as the fallback for tags without a dedicated template.
var instructions = map[intent.Intent]string{
	intent.Greeting:         "The user is greeting you. Respond warmly and briefly, then offer help with crypto markets.",
	intent.Smalltalk:        "The user is making small talk. Keep the reply light and conversational.",
	intent.EmotionalSupport: "The user sounds stressed or anxious. Acknowledge the feeling first, then offer concrete help.",
	intent.Gratitude:        "The user is thanking you. Acknowledge it briefly and invite the next question.",
	intent.Affirmation:      "The user is giving positive feedback. Thank them and keep the momentum.",
	intent.Curiosity:        "The user is asking an open question. Explain clearly, without jargon, and note any uncertainty.",
	intent.Feedback:         "The user is giving product feedback. Thank them and summarize what you understood.",
	intent.General:          "Answer the user's request as a knowledgeable crypto assistant. Be concise and factual.",
}

// instructionFor returns the instruction suffix for a tag, falling back
// to the general voice.
func instructionFor(tag intent.Intent) string {
	if s, ok := instructions[tag]; ok {
		return s
	}
	return instructions[intent.General]
}
