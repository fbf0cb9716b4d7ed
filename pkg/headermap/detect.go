package headermap

import "strings"

const (
	exactThreshold = 0.8
	fuzzyThreshold = 0.5
)

// Detect maps a header row's cell texts to semantic fields. Three passes
// run in order: exact-keyword matching, fuzzy/pattern matching, then
// positional inference for instrument_tag (column 0) and description
// (column 1). Within the exact pass, cells equal to a primary keyword or an
// English alias (score 1.0) are claimed before any cell is claimed by
// containment, so
// "signal_type" goes to signal_type rather than to signal_range, whose
// keyword "signal" it contains. Each column is claimed by at most one field.
func Detect(headerTexts []string) map[Field]int {
	mapping := make(map[Field]int)
	used := make(map[int]bool)

	for _, threshold := range []float64{1.0, exactThreshold} {
		for _, field := range KnownFields {
			if _, already := mapping[field]; already {
				continue
			}
			if col, ok := bestMatch(headerTexts, field, used, true, threshold); ok {
				mapping[field] = col
				used[col] = true
			}
		}
	}

	for _, field := range KnownFields {
		if _, already := mapping[field]; already {
			continue
		}
		if col, ok := bestMatch(headerTexts, field, used, false, fuzzyThreshold); ok {
			mapping[field] = col
			used[col] = true
		}
	}

	inferByPosition(headerTexts, mapping, used)

	return mapping
}

func bestMatch(headerTexts []string, field Field, used map[int]bool, exact bool, threshold float64) (int, bool) {
	syn := fieldSynonyms[field]
	bestCol, bestScore := -1, 0.0

	for col, text := range headerTexts {
		if used[col] || strings.TrimSpace(text) == "" {
			continue
		}
		score := matchScore(strings.TrimSpace(text), syn, exact)
		if score > bestScore {
			bestScore, bestCol = score, col
		}
	}

	if bestCol >= 0 && bestScore >= threshold {
		return bestCol, true
	}
	return 0, false
}

func matchScore(headerText string, syn synonymSet, exact bool) float64 {
	lower := strings.ToLower(headerText)
	max := 0.0

	for _, kw := range syn.primary {
		if exact {
			switch {
			case headerText == kw:
				max = maxf(max, 1.0)
			case strings.Contains(headerText, kw):
				max = maxf(max, 0.9)
			}
		} else if sim := ratio(lower, strings.ToLower(kw)); sim > 0.8 {
			max = maxf(max, sim*0.9)
		}
	}

	for _, kw := range syn.secondary {
		if exact {
			if strings.Contains(headerText, kw) {
				max = maxf(max, 0.8)
			}
		} else if sim := ratio(lower, strings.ToLower(kw)); sim > 0.7 {
			max = maxf(max, sim*0.7)
		}
	}

	for _, kw := range syn.english {
		if exact && lower == strings.ToLower(kw) {
			max = maxf(max, 1.0)
		} else if strings.Contains(lower, strings.ToLower(kw)) {
			max = maxf(max, 0.8)
		}
	}

	if !exact {
		for _, pattern := range syn.patterns {
			if pattern.MatchString(headerText) {
				max = maxf(max, 0.6)
			}
		}
	}

	return max
}

func inferByPosition(headerTexts []string, mapping map[Field]int, used map[int]bool) {
	if _, ok := mapping[FieldInstrumentTag]; !ok && !used[0] && len(headerTexts) > 0 {
		mapping[FieldInstrumentTag] = 0
		used[0] = true
	}
	if _, ok := mapping[FieldDescription]; !ok && !used[1] && len(headerTexts) > 1 {
		mapping[FieldDescription] = 1
		used[1] = true
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
