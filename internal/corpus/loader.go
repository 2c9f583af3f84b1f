package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/zeyadtarek/clm-sentinel/internal/extract"
	"github.com/zeyadtarek/clm-sentinel/internal/normalize"
)

// metadataSuffix marks sidecar files carrying hand-maintained metadata.
const metadataSuffix = "_metadata.json"

// contractExtensions are the file types loaded as contract text.
var contractExtensions = map[string]bool{
	".txt":  true,
	".docx": true,
	".pdf":  true,
}

// LoaderConfig controls which files the loader picks up.
type LoaderConfig struct {
	Dir     string   // root documents directory
	Include []string // glob patterns; empty means everything
	Exclude []string // glob patterns; empty means nothing
}

// Load walks the documents directory and returns a registry of every
// contract document found, in traversal order. Unreadable or empty files
// are skipped, not errors; a missing directory is an error.
func Load(cfg LoaderConfig) (*Registry, error) {
	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: resolve root: %w", err)
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("corpus: documents directory: %w", err)
	}

	reg := NewRegistry()

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		name := d.Name()
		if strings.HasSuffix(name, metadataSuffix) {
			return nil
		}
		if !contractExtensions[filepath.Ext(name)] {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !matchesInclude(relPath, cfg.Include) || matchesExclude(relPath, cfg.Exclude) {
			return nil
		}

		doc, err := loadDocument(path)
		if err != nil {
			return nil // skip documents that fail to load
		}
		reg.Add(doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: traversal: %w", err)
	}

	return reg, nil
}

// loadDocument reads one contract file, merges its sidecar metadata with
// content-extracted fields, and fills in file facts.
func loadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	content := string(raw)
	if strings.TrimSpace(content) == "" {
		return Document{}, fmt.Errorf("empty document %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Document{}, err
	}

	id := docID(path, info)

	// Sidecar values first, content extraction overlays them, file facts last.
	md := loadSidecar(path)
	md.Merge(extract.Fields(content))
	md.Merge(extract.Metadata{
		extract.KeyFilePath:  path,
		extract.KeyFileName:  filepath.Base(path),
		extract.KeyFileType:  strings.TrimPrefix(filepath.Ext(path), "."),
		extract.KeyDirectory: filepath.Base(filepath.Dir(path)),
		extract.KeyFileSize:  strconv.FormatInt(info.Size(), 10),
		extract.KeyModified:  info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		extract.KeyDocID:     id,
	})

	return Document{
		ID:             id,
		RawText:        content,
		NormalizedText: normalize.Text(content),
		Metadata:       md,
	}, nil
}

// loadSidecar reads the *_metadata.json file next to a document, if any.
func loadSidecar(path string) extract.Metadata {
	ext := filepath.Ext(path)
	sidecar := strings.TrimSuffix(path, ext) + metadataSuffix

	data, err := os.ReadFile(sidecar)
	if err != nil {
		return extract.Metadata{}
	}

	md := extract.Metadata{}
	if err := json.Unmarshal(data, &md); err != nil {
		return extract.Metadata{}
	}
	return md
}

// docID derives a stable document ID from the file path, size, and
// modification time. The same file on disk always maps to the same ID.
func docID(path string, info fs.FileInfo) string {
	seed := fmt.Sprintf("%s_%d_%d", path, info.ModTime().Unix(), info.Size())
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:16]
}

func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

func matchesExclude(relPath string, patterns []string) bool {
	return matchesAny(relPath, patterns)
}

func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.PathMatch(pattern, normalized); err == nil && ok {
			return true
		}
		if ok, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && ok {
			return true
		}
	}
	return false
}
