package similarity

import (
	"sort"
	"strings"
	"unicode"
)

// Process normalizes a string for the token based metrics: runes outside
// ASCII are dropped, anything that is not a letter or digit becomes a space,
// letters are lowercased and the result is trimmed.
func Process(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// TokenSortRatio compares the alphabetically sorted tokens of a and b.
func TokenSortRatio(a, b string) int {
	return round(indelRatio([]rune(sortedTokens(a)), []rune(sortedTokens(b))))
}

// PartialTokenSortRatio is PartialRatio over the sorted tokens of a and b.
func PartialTokenSortRatio(a, b string) int {
	return round(partialRatio([]rune(sortedTokens(a)), []rune(sortedTokens(b))))
}

// TokenSetRatio compares a and b through their shared and distinct tokens.
func TokenSetRatio(a, b string) int {
	return round(tokenSetRatio(a, b))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(Process(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(Process(s)) {
		set[tok] = struct{}{}
	}
	return set
}

func tokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	if len(inter) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(inter, " ")
	withA := joinNonEmpty(sect, strings.Join(onlyA, " "))
	withB := joinNonEmpty(sect, strings.Join(onlyB, " "))

	best := indelRatio([]rune(withA), []rune(withB))
	if sect == "" {
		return best
	}
	if r := indelRatio([]rune(sect), []rune(withA)); r > best {
		best = r
	}
	if r := indelRatio([]rune(sect), []rune(withB)); r > best {
		best = r
	}
	return best
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
