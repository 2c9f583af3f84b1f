package vectorizer

import (
	"math"
	"strings"
	"testing"
)

func TestFitEmptyCorpus(t *testing.T) {
	v := Fit(nil)
	if v.Dimensions() != 0 {
		t.Errorf("Dimensions = %d, want 0", v.Dimensions())
	}
	vec := v.Transform("anything at all")
	if len(vec) != 0 {
		t.Errorf("Transform on empty fit yielded %d dims", len(vec))
	}
}

func TestTransformUnitLength(t *testing.T) {
	v := Fit([]string{
		"software license agreement between parties",
		"consulting services provided monthly",
	})

	vec := v.Transform("software license agreement")
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("squared norm = %v, want 1.0", sum)
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	v := Fit([]string{
		"service agreement acme corporation payment terms",
		"vendor agreement globex quarterly invoicing",
	})
	vec := v.Transform("service agreement acme")
	if got := Cosine(vec, vec); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Cosine(v, v) = %v, want 1.0", got)
	}
}

func TestCosineSymmetry(t *testing.T) {
	v := Fit([]string{
		"service agreement acme corporation",
		"software license globex industries",
	})
	a := v.Transform("service agreement acme")
	b := v.Transform("software license globex")
	if Cosine(a, b) != Cosine(b, a) {
		t.Error("cosine similarity is not symmetric")
	}
}

func TestTransformDeterministic(t *testing.T) {
	v := Fit([]string{
		"service agreement payment terms monthly",
		"consulting contract hourly billing",
	})
	a := v.Transform("monthly payment for consulting")
	b := v.Transform("monthly payment for consulting")
	if len(a) != len(b) {
		t.Fatalf("dimension mismatch %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("component %d differs: %v vs %v (want bit-identical)", i, a[i], b[i])
		}
	}
}

func TestUnseenTermsContributeZero(t *testing.T) {
	v := Fit([]string{"service agreement payment"})
	vec := v.Transform("zebra quixotic")
	for i, x := range vec {
		if x != 0 {
			t.Errorf("dim %d = %v for fully unseen text, want 0", i, x)
		}
	}
}

func TestStopWordsExcluded(t *testing.T) {
	v := Fit([]string{"the agreement shall be between the parties"})
	for _, term := range v.Terms() {
		for _, w := range strings.Fields(term) {
			if stopWords[w] {
				t.Errorf("stop word %q made it into vocabulary term %q", w, term)
			}
		}
	}
}

func TestBigramsInVocabulary(t *testing.T) {
	v := Fit([]string{"service agreement", "service agreement"})
	found := false
	for _, term := range v.Terms() {
		if term == "service agreement" {
			found = true
		}
	}
	if !found {
		t.Errorf("bigram missing from vocabulary %v", v.Terms())
	}
}

func TestVocabularyCap(t *testing.T) {
	// Build a corpus with far more candidate terms than the cap.
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		for j := 0; j < 60; j++ {
			sb.WriteString("tok")
			sb.WriteByte(byte('a' + i%26))
			sb.WriteString("x")
			sb.WriteByte(byte('a' + j%26))
			sb.WriteString(strings.Repeat("z", i%3))
			sb.WriteString(" ")
		}
	}
	v := Fit([]string{sb.String(), "service agreement", "vendor terms"})
	if v.Dimensions() > MaxFeatures {
		t.Errorf("Dimensions = %d, exceeds cap %d", v.Dimensions(), MaxFeatures)
	}
}

func TestRareTermsWeighMore(t *testing.T) {
	// "agreement" appears in every document, "arbitration" in one.
	texts := []string{
		"agreement arbitration clause",
		"agreement payment terms",
		"agreement renewal notice",
	}
	v := Fit(texts)
	vec := v.Transform("agreement arbitration")

	var common, rare float64
	for i, term := range v.Terms() {
		switch term {
		case "agreement":
			common = vec[i]
		case "arbitration":
			rare = vec[i]
		}
	}
	if rare <= common {
		t.Errorf("rare term weight %v not above common term weight %v", rare, common)
	}
}
