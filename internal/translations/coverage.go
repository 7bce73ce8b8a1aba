package translations

import "sort"

// Coverage lists, per language, the keys present in the reference language
// but missing (or empty) in that language.
type Coverage struct {
	Reference string
	Missing   map[string][]string
	KeyCount  int
}

// Complete reports whether every language has every reference key.
func (c Coverage) Complete() bool {
	for _, keys := range c.Missing {
		if len(keys) > 0 {
			return false
		}
	}
	return true
}

// CheckCoverage compares every language in table against the reference language.
func CheckCoverage(table Table, reference string) Coverage {
	cov := Coverage{Reference: reference, Missing: make(map[string][]string)}

	ref := table[reference]
	cov.KeyCount = len(ref)
	for _, code := range table.Languages() {
		if code == reference {
			continue
		}
		entries := table[code]
		missing := []string{}
		for key := range ref {
			if entries[key] == "" {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		cov.Missing[code] = missing
	}
	return cov
}
