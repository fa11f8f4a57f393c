package alumni

import "strings"

// Match reports whether term is a case-insensitive substring of the record's first or last name.
// An empty term matches every record.
func Match(rec Record, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(rec.FirstName), term) ||
		strings.Contains(strings.ToLower(rec.LastName), term)
}

// Filter returns the records matching term, preserving their order.
// The returned slice never aliases recs.
func Filter(recs []Record, term string) []Record {
	filtered := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if Match(rec, term) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
