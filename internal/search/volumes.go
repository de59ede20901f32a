package search

import (
	"fmt"
	"strings"
)

// rootMethod is one independent volume-discovery strategy. Any single
// strategy may miss drives under certain OS or driver conditions, so
// ListRoots runs all of them and unions the results.
type rootMethod struct {
	name string
	fn   func() ([]string, error)
}

// VolumeEnumerator discovers the root paths an indexing run should scan.
type VolumeEnumerator struct {
	status func(message string)
}

// NewVolumeEnumerator creates an enumerator reporting diagnostics through
// status (may be nil).
func NewVolumeEnumerator(status func(message string)) *VolumeEnumerator {
	if status == nil {
		status = func(string) {}
	}
	return &VolumeEnumerator{status: status}
}

// ListRoots unions every discovery method, deduplicated case-insensitively.
// A failing method contributes nothing but never aborts enumeration; an
// empty result is valid.
func (v *VolumeEnumerator) ListRoots() []string {
	seen := make(map[string]bool)
	var roots []string

	for _, m := range discoveryMethods() {
		found, err := m.fn()
		if err != nil {
			log.Warn().Str("method", m.name).Err(err).Msg("volume discovery method failed")
			v.status(fmt.Sprintf("volume discovery %q failed: %v", m.name, err))
			continue
		}
		v.status(fmt.Sprintf("volume discovery %q found %d root(s)", m.name, len(found)))
		for _, root := range found {
			key := strings.ToLower(root)
			if !seen[key] {
				seen[key] = true
				roots = append(roots, root)
			}
		}
	}
	return roots
}
