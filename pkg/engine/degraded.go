package engine

import "math"

// degradedKeywords are the control-flow words counted by the fallback scan.
var degradedKeywords = map[string]bool{
	"if":     true,
	"else":   true,
	"for":    true,
	"while":  true,
	"do":     true,
	"switch": true,
	"case":   true,
	"catch":  true,
}

// cognitiveApproxFactor scales the approximate cyclomatic score into an
// approximate cognitive score when no tree is available.
const cognitiveApproxFactor = 1.2

// degradedResult holds the approximate counters from the token scan.
type degradedResult struct {
	cyclomatic int
	cognitive  int
	maxNesting int
}

// scanDegraded approximates complexity by counting literal keyword and
// operator occurrences in unparsed text. It makes no attempt to skip
// strings or comments; the result is explicitly marked approximate by the
// caller via the report's degraded flag.
func scanDegraded(source string) degradedResult {
	var decisions int
	var braceDepth, maxBraceDepth int

	for i := 0; i < len(source); {
		c := source[i]

		switch {
		case isWordByte(c):
			start := i
			for i < len(source) && isWordByte(source[i]) {
				i++
			}
			if degradedKeywords[source[start:i]] {
				decisions++
			}
			continue
		case c == '&' && i+1 < len(source) && source[i+1] == '&':
			decisions++
			i += 2
			continue
		case c == '|' && i+1 < len(source) && source[i+1] == '|':
			decisions++
			i += 2
			continue
		case c == '?':
			decisions++
		case c == '{':
			braceDepth++
			if braceDepth > maxBraceDepth {
				maxBraceDepth = braceDepth
			}
		case c == '}':
			if braceDepth > 0 {
				braceDepth--
			}
		}
		i++
	}

	cyclomatic := 1 + decisions
	return degradedResult{
		cyclomatic: cyclomatic,
		cognitive:  int(math.Round(cognitiveApproxFactor * float64(cyclomatic))),
		maxNesting: maxBraceDepth,
	}
}

// isWordByte reports whether b can be part of an identifier or keyword.
func isWordByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
