package search

import (
	"sort"
	"strings"
)

// QueryEngine evaluates search terms against a catalog. Every query is a
// full scan of the flat collection plus, for dot-prefixed terms, the matching
// extension bucket; no text index is maintained. Queries are safe during an
// in-progress walk and observe its partial snapshot.
type QueryEngine struct {
	catalog    *FileCatalog
	maxResults int
}

func newQueryEngine(catalog *FileCatalog, maxResults int) *QueryEngine {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &QueryEngine{catalog: catalog, maxResults: maxResults}
}

// Search returns the entries matching term, ordered by base name ascending
// (case-insensitive), ties broken by path. An empty or whitespace-only term
// yields an empty sequence.
//
// An entry matches when its base name, its base name without extension, or
// its full path contains term case-insensitively. A term starting with "."
// additionally unions in the whole extension bucket for that term, so a file
// whose extension equals the term is found regardless of substring hits.
func (q *QueryEngine) Search(term string) []FileEntry {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)

	matched := make(map[string]FileEntry)
	for _, entry := range q.catalog.Snapshot() {
		if entryMatches(entry, needle) {
			matched[entry.Path] = entry
		}
	}

	if strings.HasPrefix(needle, ".") {
		for _, entry := range q.catalog.ByExtension(needle) {
			matched[entry.Path] = entry
		}
	}

	results := make([]FileEntry, 0, len(matched))
	for _, entry := range matched {
		results = append(results, entry)
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := strings.ToLower(results[i].Name), strings.ToLower(results[j].Name)
		if a != b {
			return a < b
		}
		return results[i].Path < results[j].Path
	})

	if len(results) > q.maxResults {
		results = results[:q.maxResults]
	}
	return results
}

func entryMatches(entry FileEntry, needle string) bool {
	name := strings.ToLower(entry.Name)
	if strings.Contains(name, needle) {
		return true
	}
	stem := strings.TrimSuffix(name, entry.Extension)
	if strings.Contains(stem, needle) {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Path), needle)
}
