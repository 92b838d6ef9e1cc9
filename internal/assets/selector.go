package assets

import (
	"sort"
	"strings"
)

// Basename returns the final path segment of a download URL, the part the
// filter matches against.
func Basename(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// SelectBest ranks candidate asset URLs and returns the single best match
// for this host, or ok=false when the list is empty or every candidate is
// rejected.
//
// Candidates are ordered by basename length descending before filtering:
// shorter names are often generic wrapper scripts or truncated prefixes of
// the real artifact, so the longest accepted name wins. The sort is stable,
// so equal-length survivors keep their input order.
func SelectBest(urls []string, filter *Filter) (string, bool) {
	ranked := make([]string, len(urls))
	copy(ranked, urls)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(Basename(ranked[i])) > len(Basename(ranked[j]))
	})

	for _, url := range ranked {
		if filter.Accept(Basename(url)) {
			return url, true
		}
	}
	return "", false
}
