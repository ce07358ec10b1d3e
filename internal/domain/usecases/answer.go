// Package usecases - answer.go turns retrieval results into grounded answers.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/ports"
)

// AnswerUseCase answers questions with the generation backend, grounded on
// retrieved passages.
type AnswerUseCase struct {
	retriever *RetrieveUseCase
	llm       ports.LLMService
}

// NewAnswerUseCase creates an AnswerUseCase with injected dependencies.
func NewAnswerUseCase(retriever *RetrieveUseCase, llm ports.LLMService) *AnswerUseCase {
	return &AnswerUseCase{retriever: retriever, llm: llm}
}

// Ask retrieves context for the question and generates an answer from it.
// An empty corpus yields an Answer with no sources and no text; the
// transport layer decides how to present that.
func (uc *AnswerUseCase) Ask(ctx context.Context, question string) (*entities.Answer, error) {
	sources, err := uc.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return &entities.Answer{}, nil
	}

	text, err := uc.llm.Generate(ctx, buildAskPrompt(question, sources))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &entities.Answer{
		Text:    strings.TrimSpace(text),
		Sources: sources,
	}, nil
}

// Summarize condenses the given messages into a short paragraph.
func (uc *AnswerUseCase) Summarize(ctx context.Context, messages []string) (string, error) {
	if len(messages) == 0 {
		return "", nil
	}

	prompt := "Summarize the following in a short paragraph:\n\n" + strings.Join(messages, "\n")
	text, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// buildAskPrompt instructs the model to answer strictly from the retrieved
// context.
func buildAskPrompt(question string, sources []entities.RetrievedChunk) string {
	var sb strings.Builder
	sb.WriteString("Use ONLY the context below to answer.\n\nContext:\n")
	for i, s := range sources {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(s.Text)
	}
	sb.WriteString("\n\nQuestion:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nIf the answer isn't in the context, say \"I don't know\".")
	return sb.String()
}
