package embeddings

import (
	"context"
	"testing"

	"github.com/zeyadtarek/clm-sentinel/internal/vectorizer"
)

func fittedVectorizer(t *testing.T) *vectorizer.Vectorizer {
	t.Helper()
	return vectorizer.Fit([]string{
		"service agreement between acme corporation and techserv",
		"software license granted to acme corporation",
		"employment contract with globex industries",
	})
}

func TestTermWeightEmbed(t *testing.T) {
	e := NewTermWeight(fittedVectorizer(t))

	results, err := e.Embed(context.Background(), []string{"Service Agreement with Acme", "unrelated text"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d embeddings, want 2", len(results))
	}
	for i, emb := range results {
		if len(emb) != e.Dimensions() {
			t.Errorf("embedding %d has %d dims, want %d", i, len(emb), e.Dimensions())
		}
	}

	var nonZero bool
	for _, x := range results[0] {
		if x != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("in-vocabulary text embedded to the zero vector")
	}
}

func TestTermWeightDeterministic(t *testing.T) {
	e := NewTermWeight(fittedVectorizer(t))

	a, err := e.Embed(context.Background(), []string{"acme corporation service"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := e.Embed(context.Background(), []string{"acme corporation service"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("embedding differs at dim %d", i)
		}
	}
}

func TestTermWeightEmptyVocabulary(t *testing.T) {
	e := NewTermWeight(vectorizer.Fit(nil))
	if _, err := e.Embed(context.Background(), []string{"anything"}); err == nil {
		t.Error("empty vocabulary did not error")
	}
}

func TestToChromemFunc(t *testing.T) {
	fn := ToChromemFunc(NewTermWeight(fittedVectorizer(t)))

	emb, err := fn(context.Background(), "acme corporation")
	if err != nil {
		t.Fatalf("embedding func: %v", err)
	}
	if len(emb) == 0 {
		t.Error("embedding func returned no vector")
	}
}
