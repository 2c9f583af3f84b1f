package similarity

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
	"github.com/zeyadtarek/clm-sentinel/internal/normalize"
)

func testDoc(id, name, text string) corpus.Document {
	md := extract.Fields(text)
	md[extract.KeyFileName] = name
	md[extract.KeyDocID] = id
	return corpus.Document{
		ID:             id,
		RawText:        text,
		NormalizedText: normalize.Text(text),
		Metadata:       md,
	}
}

func builtEngine(t *testing.T, docs ...corpus.Document) *Engine {
	t.Helper()
	e := NewEngine()
	e.Build(docs)
	return e
}

const serviceText = `Service Agreement between Acme Corporation and TechServ.
Monthly fee payable for cloud hosting services rendered by the provider.`

const serviceTextV2 = `Service Agreement between Acme Corporation and TechServ.
Monthly fee payable for cloud hosting services rendered by the provider.
Renewal clause added for the second term.`

const unrelatedText = `Employment Contract for warehouse operations staff.
Forklift certification required, night shifts rotate weekly.`

func TestSimilarToExcludesSelf(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "sa_v1.txt", serviceText),
		testDoc("d2", "sa_v2.txt", serviceTextV2),
		testDoc("d3", "emp.txt", unrelatedText),
	)

	for _, id := range []string{"d1", "d2", "d3"} {
		for _, m := range e.SimilarTo(id, 10, 0) {
			if m.DocumentID == id {
				t.Errorf("SimilarTo(%s) returned the query document", id)
			}
		}
	}
}

func TestSimilarToRanking(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "sa_v1.txt", serviceText),
		testDoc("d2", "sa_v2.txt", serviceTextV2),
		testDoc("d3", "emp.txt", unrelatedText),
	)

	matches := e.SimilarTo("d1", 5, 0.1)
	if len(matches) == 0 {
		t.Fatal("no matches for near-duplicate corpus")
	}
	if matches[0].DocumentID != "d2" {
		t.Errorf("top match = %s, want d2", matches[0].DocumentID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Error("matches not sorted by score descending")
		}
	}
}

func TestSimilarToUnknownID(t *testing.T) {
	e := builtEngine(t, testDoc("d1", "a.txt", serviceText))
	if got := e.SimilarTo("missing", 5, 0); len(got) != 0 {
		t.Errorf("unknown ID returned %d matches, want 0", len(got))
	}
}

func TestSimilarToRespectsLimitAndThreshold(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", serviceTextV2),
		testDoc("d3", "c.txt", serviceText),
		testDoc("d4", "d.txt", unrelatedText),
	)

	matches := e.SimilarTo("d1", 1, 0.1)
	if len(matches) != 1 {
		t.Errorf("k=1 returned %d matches", len(matches))
	}

	matches = e.SimilarTo("d1", 10, 0.999)
	for _, m := range matches {
		if m.Score < 0.999 {
			t.Errorf("match below threshold: %v", m.Score)
		}
	}
}

func TestSimilarToText(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "sa.txt", serviceText),
		testDoc("d2", "emp.txt", unrelatedText),
	)

	matches := e.SimilarToText("cloud hosting services fee", 5, DefaultTextMinScore)
	if len(matches) == 0 {
		t.Fatal("free-text query found nothing")
	}
	if matches[0].DocumentID != "d1" {
		t.Errorf("top match = %s, want d1", matches[0].DocumentID)
	}
}

func TestQueriesOnUnbuiltEngine(t *testing.T) {
	e := NewEngine()
	if e.Built() {
		t.Error("fresh engine reports Built")
	}
	if got := e.SimilarTo("x", 5, 0); got != nil {
		t.Errorf("SimilarTo on unbuilt engine = %v", got)
	}
	if got := e.SimilarToText("query", 5, 0); got != nil {
		t.Errorf("SimilarToText on unbuilt engine = %v", got)
	}
	if got := e.DuplicateGroups(0.9); got != nil {
		t.Errorf("DuplicateGroups on unbuilt engine = %v", got)
	}
	if got := e.Cluster(3); len(got) != 0 {
		t.Errorf("Cluster on unbuilt engine = %v", got)
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	e := NewEngine()
	e.Build(nil)
	if !e.Built() {
		t.Error("empty build should still activate an (empty) index")
	}
	if got := e.SimilarToText("anything", 5, 0); len(got) != 0 {
		t.Errorf("query on empty index = %v", got)
	}
	stats := e.PairwiseStats()
	if stats.TotalDocuments != 0 || stats.Mean != 0 {
		t.Errorf("stats on empty index = %+v", stats)
	}
}

func TestDuplicateGroups(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", serviceText), // identical text
		testDoc("d3", "c.txt", unrelatedText),
	)

	groups := e.DuplicateGroups(0.95)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Fatalf("group size = %d, want 2", len(groups[0]))
	}
	ids := map[string]bool{}
	for _, m := range groups[0] {
		ids[m.DocumentID] = true
	}
	if !ids["d1"] || !ids["d2"] || ids["d3"] {
		t.Errorf("group members = %v", ids)
	}
}

func TestDuplicateGroupsDisjoint(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", serviceText),
		testDoc("d3", "c.txt", serviceTextV2),
		testDoc("d4", "d.txt", serviceTextV2),
		testDoc("d5", "e.txt", unrelatedText),
	)

	seen := map[string]bool{}
	for _, group := range e.DuplicateGroups(0.6) {
		for _, m := range group {
			if seen[m.DocumentID] {
				t.Errorf("document %s appears in more than one group", m.DocumentID)
			}
			seen[m.DocumentID] = true
		}
	}
}

func TestClusterCoversAllDocuments(t *testing.T) {
	docs := []corpus.Document{
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", serviceTextV2),
		testDoc("d3", "c.txt", unrelatedText),
		testDoc("d4", "d.txt", serviceText),
		testDoc("d5", "e.txt", unrelatedText),
	}
	e := builtEngine(t, docs...)

	clusters := e.Cluster(2)
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}

	assigned := map[string]int{}
	for c, ids := range clusters {
		if c < 0 || c >= 2 {
			t.Errorf("cluster id %d out of range", c)
		}
		for _, id := range ids {
			assigned[id]++
		}
	}
	for _, d := range docs {
		if assigned[d.ID] != 1 {
			t.Errorf("document %s assigned %d times, want exactly 1", d.ID, assigned[d.ID])
		}
	}
}

func TestClusterCapsAtCorpusSize(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", unrelatedText),
	)
	clusters := e.Cluster(10)
	if len(clusters) != 2 {
		t.Errorf("got %d clusters, want corpus size 2", len(clusters))
	}
}

func TestClusterReproducible(t *testing.T) {
	docs := []corpus.Document{
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", serviceTextV2),
		testDoc("d3", "c.txt", unrelatedText),
		testDoc("d4", "d.txt", serviceText),
	}
	e := builtEngine(t, docs...)

	first := e.Cluster(2)
	second := e.Cluster(2)
	for c, ids := range first {
		other := second[c]
		if len(ids) != len(other) {
			t.Fatalf("cluster %d size changed between runs", c)
		}
		for i := range ids {
			if ids[i] != other[i] {
				t.Fatalf("cluster %d member %d changed between runs", c, i)
			}
		}
	}
}

func TestPairwiseStatsSingleDocument(t *testing.T) {
	e := builtEngine(t, testDoc("d1", "a.txt", serviceText))
	stats := e.PairwiseStats()
	if stats.TotalDocuments != 1 {
		t.Errorf("TotalDocuments = %d", stats.TotalDocuments)
	}
	if stats.HighCount != 0 || stats.MediumCount != 0 || stats.LowCount != 0 {
		t.Errorf("pair counts nonzero for single-document corpus: %+v", stats)
	}
	if stats.Mean != 0 || stats.StdDev != 0 {
		t.Errorf("aggregates nonzero for single-document corpus: %+v", stats)
	}
}

func TestPairwiseStatsBands(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", serviceText),
		testDoc("d3", "c.txt", unrelatedText),
	)
	stats := e.PairwiseStats()

	if got := stats.HighCount + stats.MediumCount + stats.LowCount; got != 3 {
		t.Errorf("band counts sum to %d, want 3 pairs", got)
	}
	if stats.HighCount < 1 {
		t.Errorf("identical pair not counted in high band: %+v", stats)
	}
	if stats.Max < 0.999 || stats.Max > 1.0000001 {
		t.Errorf("Max = %v, want ~1.0 for identical documents", stats.Max)
	}
	if stats.Min > stats.Mean || stats.Mean > stats.Max {
		t.Errorf("inconsistent aggregates: %+v", stats)
	}
	if math.IsNaN(stats.StdDev) {
		t.Error("StdDev is NaN")
	}
}

func TestVersions(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "service_agreement_v1.txt", serviceText),
		testDoc("d2", "service_agreement_v2.txt", serviceTextV2),
		testDoc("d3", "employment.txt", unrelatedText),
	)

	versions := e.Versions("service_agreement")
	if len(versions) != 2 {
		t.Fatalf("got %d versions, want 2", len(versions))
	}
	if versions[0].FileName != "service_agreement_v1.txt" {
		t.Errorf("versions not sorted by file name: %v", versions[0].FileName)
	}
	if _, ok := versions[0].Similarities["service_agreement_v2.txt"]; !ok {
		t.Error("pairwise similarity missing")
	}

	if got := e.Versions("service_agreement_v1"); got != nil {
		t.Errorf("single matching document should yield nil, got %v", got)
	}
}

func TestExportMatrix(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", unrelatedText),
	)

	var buf bytes.Buffer
	if err := e.ExportMatrix(&buf); err != nil {
		t.Fatalf("ExportMatrix: %v", err)
	}

	var out struct {
		DocumentNames    []string    `json:"document_names"`
		SimilarityMatrix [][]float64 `json:"similarity_matrix"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(out.DocumentNames) != 2 || len(out.SimilarityMatrix) != 2 {
		t.Fatalf("export shape %dx%d, want 2x2", len(out.DocumentNames), len(out.SimilarityMatrix))
	}
	if math.Abs(out.SimilarityMatrix[0][0]-1.0) > 1e-9 {
		t.Errorf("diagonal = %v, want 1.0", out.SimilarityMatrix[0][0])
	}
	if out.SimilarityMatrix[0][1] != out.SimilarityMatrix[1][0] {
		t.Error("matrix not symmetric")
	}
}

func TestRebuildReplacesIndex(t *testing.T) {
	e := builtEngine(t,
		testDoc("d1", "a.txt", serviceText),
		testDoc("d2", "b.txt", serviceTextV2),
	)
	if e.Size() != 2 {
		t.Fatalf("Size = %d", e.Size())
	}

	e.Build([]corpus.Document{testDoc("d9", "z.txt", unrelatedText)})
	if e.Size() != 1 {
		t.Errorf("Size after rebuild = %d, want 1", e.Size())
	}
	if got := e.SimilarTo("d1", 5, 0); len(got) != 0 {
		t.Error("old document still queryable after rebuild")
	}
}
