// Package rag answers natural-language questions about the contract
// corpus. Retrieval goes through the similarity engine; answer
// generation goes through an Answerer picked at construction time,
// either an LLM provider or a local keyword heuristic.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/llm"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
)

const (
	defaultMaxResults  = 5
	contextCharsPerDoc = 1500
)

// Source cites one document that contributed to an answer.
type Source struct {
	DocumentID string  `json:"document_id"`
	FileName   string  `json:"file_name"`
	Score      float64 `json:"relevance_score"`
}

// Answer is the result of one question.
type Answer struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Sources   []Source  `json:"sources"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// Answerer generates an answer from a question and retrieved documents.
type Answerer interface {
	Answer(ctx context.Context, question string, docs []corpus.Document) (text, model string, err error)
}

// Pipeline retrieves relevant documents and generates answers.
type Pipeline struct {
	engine   *similarity.Engine
	answerer Answerer
}

// New builds a pipeline over the engine. A nil provider selects the
// local heuristic answerer.
func New(engine *similarity.Engine, provider llm.Provider) *Pipeline {
	var answerer Answerer
	if provider != nil {
		answerer = &llmAnswerer{provider: provider}
	} else {
		answerer = &heuristicAnswerer{}
	}
	return &Pipeline{engine: engine, answerer: answerer}
}

// Ask retrieves up to maxResults relevant documents and generates an
// answer citing them. An empty corpus or no relevant documents yields a
// "nothing found" answer, not an error.
func (p *Pipeline) Ask(ctx context.Context, question string, maxResults int) (Answer, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	matches := p.engine.SimilarToText(question, maxResults, similarity.DefaultTextMinScore)

	answer := Answer{
		Question:  question,
		Timestamp: time.Now(),
	}

	if len(matches) == 0 {
		answer.Answer = "I couldn't find any relevant information to answer your question."
		answer.Model = "none"
		return answer, nil
	}

	docs := make([]corpus.Document, 0, len(matches))
	for _, m := range matches {
		doc, ok := p.engine.Document(m.DocumentID)
		if !ok {
			continue
		}
		docs = append(docs, doc)
		answer.Sources = append(answer.Sources, Source{
			DocumentID: m.DocumentID,
			FileName:   m.FileName,
			Score:      m.Score,
		})
	}

	text, model, err := p.answerer.Answer(ctx, question, docs)
	if err != nil {
		return Answer{}, fmt.Errorf("generating answer: %w", err)
	}
	answer.Answer = text
	answer.Model = model
	return answer, nil
}

// llmAnswerer prompts a text-generation provider with the retrieved
// documents as context.
type llmAnswerer struct {
	provider llm.Provider
}

const systemPrompt = "You are a contract analysis assistant. Use the provided context to answer " +
	"questions about contracts. If the context does not contain the answer, say you don't know. " +
	"Cite the source documents you used."

func (a *llmAnswerer) Answer(ctx context.Context, question string, docs []corpus.Document) (string, string, error) {
	var prompt strings.Builder
	prompt.WriteString("Context:\n\n")
	for _, doc := range docs {
		content := doc.RawText
		if len(content) > contextCharsPerDoc {
			content = content[:contextCharsPerDoc] + "..."
		}
		fmt.Fprintf(&prompt, "--- %s ---\n%s\n\n", doc.FileName(), content)
	}
	fmt.Fprintf(&prompt, "Question: %s\n", question)

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      prompt.String(),
		Temperature: 0.1,
	})
	if err != nil {
		return "", "", err
	}
	return resp.Content, resp.Model, nil
}
