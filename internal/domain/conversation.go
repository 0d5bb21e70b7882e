package domain

// ConversationTurn is one user submission and the joined bot reply shown
// for it in the transcript.
type ConversationTurn struct {
	UserText string `json:"userText"`
	BotText  string `json:"botText"`
}

// BotReply is a single entry returned by the dialogue service REST channel.
// Entries without text (images, buttons, custom payloads) are ignored.
type BotReply struct {
	RecipientID string `json:"recipient_id,omitempty"`
	Text        string `json:"text,omitempty"`
}
