// Package prompt assembles the message sequence sent to the generation
// provider: advisor persona, grounding context with provenance labels,
// conversation history, and the final user message.
package prompt

import (
	"fmt"
	"strings"

	"github.com/coastwise/strata-advisor/internal/domain"
)

const systemPersona = "You are a senior building science and strata engineering advisor. " +
	"Your goal is to help PROJECT MANAGERS answer technical questions that " +
	"they would normally ask an engineer or technician.\n\n" +
	"Use ONLY the provided context from reports and knowledge base. " +
	"Be conservative; if the question requires detailed structural analysis " +
	"or legal advice, clearly say it must be escalated to an engineer.\n\n" +
	"Always:\n" +
	"- Explain in plain language first.\n" +
	"- Then add a short technical note if needed.\n" +
	"- Never give structural sign-off or legal advice."

const reportPriorityClause = "\n\nA specific report is associated with this question. " +
	"Give priority to information coming from that report when answering."

const emptyContext = "No relevant context found in the knowledge base."

const blockSeparator = "\n\n---\n\n"

// Context concatenates the retrieved documents into the grounding block, one
// labeled section per result. An empty result set yields a literal placeholder
// so the model can say it lacks grounding instead of the request failing.
func Context(results []domain.ScoredDocument) string {
	if len(results) == 0 {
		return emptyContext
	}

	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("[Source: %s]\n%s", r.SourceLabel(), r.Text)
	}
	return strings.Join(blocks, blockSeparator)
}

// Assemble builds the full message sequence: system persona (with the
// report-priority clause appended when the question is report-scoped), the
// caller's history verbatim, then the user message embedding the question and
// grounding context.
func Assemble(question, context string, history []domain.ChatMessage, reportScoped bool) []domain.ChatMessage {
	system := systemPersona
	if reportScoped {
		system += reportPriorityClause
	}

	user := fmt.Sprintf(
		"Question from project manager:\n%s\n\n"+
			"Context from past reports and knowledge base:\n%s\n\n"+
			"Answer in a way that a project manager can forward parts of it to a strata "+
			"council or property manager.",
		question, context,
	)

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: user})
	return messages
}
