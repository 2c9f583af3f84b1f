// Package extract pulls structured contract facts out of raw document text
// using an ordered table of labeled regular-expression rules.
package extract

import "strings"

// Metadata is a partial record of extracted facts keyed by the fixed
// vocabulary in rules.go. Values are strings or string slices.
type Metadata map[string]any

// String returns the string value for key, or "" if absent.
func (m Metadata) String(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// Strings returns the string-list value for key, or nil if absent.
func (m Metadata) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Has reports whether the key was found during extraction.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Merge overlays other onto m, with other's values winning on key collisions.
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		m[k] = v
	}
}

// Fields applies the extraction table to raw (non-normalized) document text
// and returns the metadata record. Only fields actually found get keys.
func Fields(content string) Metadata {
	md := Metadata{}

	for _, rule := range rules {
		switch rule.Mode {
		case First:
			if md.Has(rule.Key) {
				continue
			}
			if v, ok := firstMatch(rule, content); ok {
				md[rule.Key] = v
			}
		case Collect:
			if v, ok := firstMatch(rule, content); ok {
				md[rule.Key] = append(md.Strings(rule.Key), v)
			}
		case All:
			for _, v := range allMatches(rule, content) {
				md[rule.Key] = append(md.Strings(rule.Key), v)
			}
		}
	}

	for _, ct := range contractTypes {
		if ct.Pattern.MatchString(content) {
			md[KeyContractType] = ct.Name
			break
		}
	}

	return md
}

func firstMatch(rule Rule, content string) (string, bool) {
	m := rule.Pattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(capture(m)), true
}

func allMatches(rule Rule, content string) []string {
	var out []string
	for _, m := range rule.Pattern.FindAllStringSubmatch(content, -1) {
		out = append(out, strings.TrimSpace(capture(m)))
	}
	return out
}

// capture returns the first capture group when the pattern has one,
// otherwise the whole match (monetary amounts have no group).
func capture(m []string) string {
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}
