package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zeyadtarek/clm-sentinel/internal/extract"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadWalksDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "contracts/sa_001.txt", "Service Agreement\nContract ID: SA-1\nClient: Acme Corp\n")
	writeFile(t, dir, "contracts/nda_001.txt", "Non-Disclosure Agreement\nCompany: Globex\n")
	writeFile(t, dir, "notes/readme.md", "not a contract")

	reg, err := Load(LoaderConfig{Dir: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("loaded %d documents, want 2", reg.Len())
	}

	for _, doc := range reg.All() {
		if doc.ID == "" {
			t.Error("document has empty ID")
		}
		if doc.NormalizedText == "" {
			t.Error("document has empty normalized text")
		}
		if doc.Metadata.String(extract.KeyDirectory) == "" {
			t.Error("directory metadata missing")
		}
	}
}

func TestLoadSkipsSidecarAndMergesIt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sa_001.txt", "Service Agreement\nContract ID: SA-1\n")
	writeFile(t, dir, "sa_001_metadata.json", `{"owner":"legal","contract_id":"OVERRIDDEN"}`)

	reg, err := Load(LoaderConfig{Dir: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("loaded %d documents, want 1 (sidecar must not load as a document)", reg.Len())
	}

	doc := reg.All()[0]
	if got := doc.Metadata.String("owner"); got != "legal" {
		t.Errorf("sidecar field owner = %q, want legal", got)
	}
	// Content extraction wins over sidecar values for extracted keys.
	if got := doc.Metadata.String(extract.KeyContractID); got != "SA-1" {
		t.Errorf("contract_id = %q, want SA-1", got)
	}
}

func TestLoadStableIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "Vendor Agreement\n")

	first, err := Load(LoaderConfig{Dir: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := Load(LoaderConfig{Dir: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first.All()[0].ID != second.All()[0].ID {
		t.Error("document ID changed between loads of an unchanged file")
	}
}

func TestLoadExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.txt", "Service Agreement\n")
	writeFile(t, dir, "archive/old.txt", "Service Agreement\n")

	reg, err := Load(LoaderConfig{Dir: dir, Exclude: []string{"archive/**"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("loaded %d documents, want 1", reg.Len())
	}
	if got := reg.All()[0].FileName(); got != "keep.txt" {
		t.Errorf("kept %q, want keep.txt", got)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(LoaderConfig{Dir: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Add(Document{ID: "a", RawText: "x"})
	reg.Add(Document{ID: "b", RawText: "y"})
	reg.Add(Document{ID: "a", RawText: "z"}) // replaces in place

	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}
	doc, ok := reg.Get("a")
	if !ok || doc.RawText != "z" {
		t.Errorf("Get(a) = %+v, %v", doc, ok)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) reported ok")
	}
	if reg.All()[0].ID != "a" || reg.All()[1].ID != "b" {
		t.Error("corpus order not preserved across replace")
	}
}
