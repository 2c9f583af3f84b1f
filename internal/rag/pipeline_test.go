package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
	"github.com/zeyadtarek/clm-sentinel/internal/llm"
	"github.com/zeyadtarek/clm-sentinel/internal/normalize"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
)

const serviceContract = `SERVICE AGREEMENT

Contract ID: SA-2025-001
Client: Acme Corporation
Service Provider: TechServ Solutions LLC
Expiration Date: June 30, 2026
Monthly Fee: $5,000
Address: 123 Main Street, Springfield`

const licenseContract = `SOFTWARE LICENSE AGREEMENT

Contract ID: SL-2025-002
Company: Initech
License Fee: $12,000 per year
End Date: 2026-01-15`

func builtEngine(t *testing.T) *similarity.Engine {
	t.Helper()
	engine := similarity.NewEngine()
	docs := []corpus.Document{
		{
			ID:             "d1",
			RawText:        serviceContract,
			NormalizedText: normalize.Text(serviceContract),
			Metadata: extract.Metadata{
				extract.KeyFileName:  "service.txt",
				extract.KeyCompanies: []string{"Acme Corporation", "TechServ Solutions LLC"},
			},
		},
		{
			ID:             "d2",
			RawText:        licenseContract,
			NormalizedText: normalize.Text(licenseContract),
			Metadata: extract.Metadata{
				extract.KeyFileName:  "license.txt",
				extract.KeyCompanies: []string{"Initech"},
			},
		},
	}
	engine.Build(docs)
	return engine
}

func TestAskHeuristicExpiration(t *testing.T) {
	p := New(builtEngine(t), nil)

	answer, err := p.Ask(context.Background(), "When does the service agreement expire?", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Model != "heuristic" {
		t.Errorf("Model = %q", answer.Model)
	}
	if !strings.Contains(answer.Answer, "June 30, 2026") {
		t.Errorf("answer missing expiration date:\n%s", answer.Answer)
	}
	if len(answer.Sources) == 0 {
		t.Error("no sources cited")
	}
}

func TestAskHeuristicCompanies(t *testing.T) {
	p := New(builtEngine(t), nil)

	answer, err := p.Ask(context.Background(), "Which companies are parties to the service agreement?", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(answer.Answer, "Acme Corporation") {
		t.Errorf("answer missing company:\n%s", answer.Answer)
	}
}

func TestAskHeuristicFinancial(t *testing.T) {
	p := New(builtEngine(t), nil)

	answer, err := p.Ask(context.Background(), "What is the monthly cost of the service agreement?", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(answer.Answer, "$5,000") {
		t.Errorf("answer missing fee:\n%s", answer.Answer)
	}
}

func TestAskEmptyCorpus(t *testing.T) {
	engine := similarity.NewEngine()
	engine.Build(nil)
	p := New(engine, nil)

	answer, err := p.Ask(context.Background(), "anything at all", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(answer.Answer, "couldn't find any relevant information") {
		t.Errorf("answer = %q", answer.Answer)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("sources = %v", answer.Sources)
	}
}

type fakeProvider struct {
	lastPrompt string
}

func (f *fakeProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.lastPrompt = req.Prompt
	return &llm.Response{Content: "The service agreement expires on June 30, 2026.", Model: "fake-model"}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestAskWithProvider(t *testing.T) {
	provider := &fakeProvider{}
	p := New(builtEngine(t), provider)

	answer, err := p.Ask(context.Background(), "When does the service agreement expire?", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Model != "fake-model" {
		t.Errorf("Model = %q", answer.Model)
	}
	if !strings.Contains(provider.lastPrompt, "service.txt") {
		t.Error("prompt missing retrieved document context")
	}
	if !strings.Contains(provider.lastPrompt, "When does the service agreement expire?") {
		t.Error("prompt missing question")
	}
}
