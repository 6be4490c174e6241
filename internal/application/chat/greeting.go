package chat

import (
	domain "github.com/bryanwahyu/lexguard/internal/domain/chat"
)

const (
	greetingWithDocument = "Hello! I've analyzed your document. Ask me anything about:\n\n" +
		"- Key clauses and terms\n- Risk factors and issues\n- Translation needs\n- Summary insights\n\n" +
		"What would you like to know?"
	greetingWithoutDocument = "Hi! I'm your AI legal assistant. Upload a document first, and I'll help you " +
		"analyze contracts, identify risks, explain legal terms, and more!"
)

var greetingSuggestions = []string{
	"Explain the main risks in this contract",
	"What are the termination clauses?",
	"Summarize key obligations",
	"Check for missing standard clauses",
}

// Greet appends the assistant greeting. Its wording depends on whether a
// document is already loaded; it always carries suggested replies.
func (c *Controller) Greet() domain.Message {
	_, hasDocument := c.holder.Current()
	text := greetingWithoutDocument
	if hasDocument {
		text = greetingWithDocument
	}
	return c.log.Append(domain.Message{
		Role:             domain.RoleAssistant,
		Text:             text,
		CreatedAt:        c.clock.Now(),
		SuggestedReplies: greetingSuggestions,
	})
}

// QuickAction is a canned query offered above the chat input.
type QuickAction struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

var (
	documentActions = []QuickAction{
		{Label: "Find key risks", Query: "What are the main risks in this document?"},
		{Label: "Summarize contract", Query: "Give me a summary of this contract"},
		{Label: "Explain terms", Query: "Explain any complex legal terms"},
		{Label: "Missing clauses", Query: "What important clauses might be missing?"},
	}
	introActions = []QuickAction{
		{Label: "How it works", Query: "How does the document analysis work?"},
		{Label: "AI capabilities", Query: "What can this AI assistant do?"},
		{Label: "Supported formats", Query: "What document formats are supported?"},
		{Label: "Languages", Query: "What languages do you support?"},
	}
)

// QuickActions returns the actions that fit the session's current state.
func (c *Controller) QuickActions() []QuickAction {
	if _, ok := c.holder.Current(); ok {
		return append([]QuickAction(nil), documentActions...)
	}
	return append([]QuickAction(nil), introActions...)
}
