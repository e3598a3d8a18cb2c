package interpret

import (
	"regexp"
	"strconv"
	"strings"

	"pc-estimate-be/pkg/parts"
)

// Budget amounts are integer KRW. "150만" and "150만원" scale by 10,000;
// a bare "1500000원" is taken as-is. The first match wins.
var (
	reManwon = regexp.MustCompile(`(\d[\d,]*)\s*만원?`)
	reWon    = regexp.MustCompile(`(\d[\d,]*)\s*원`)
	// Bare amounts like "1,000,000" carry no unit token but are
	// unambiguous once they reach six digits.
	reBare = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d{6,})`)
)

// purposeKeywords is ORDERED: the first purpose with a matching keyword
// wins, so e.g. "사무용 겸 게임" resolves to office.
var purposeKeywords = []struct {
	purpose  string
	keywords []string
}{
	{"office", []string{"office", "사무"}},
	{"gaming", []string{"gaming", "game", "게이밍", "게임"}},
	{"streaming", []string{"streaming", "stream", "방송", "스트리밍"}},
	{"editing", []string{"editing", "편집", "영상"}},
	{"design", []string{"design", "디자인", "3d"}},
	{"work", []string{"work", "작업", "업무"}},
}

var (
	liquidKeywords = []string{"liquid", "수랭", "수냉", "일체형"}
	airKeywords    = []string{"air", "공랭", "공냉"}
	intelKeywords  = []string{"intel", "인텔"}
	amdKeywords    = []string{"amd", "라이젠", "ryzen"}
)

// Parse extracts budget, purpose, cooling and platform preferences from
// raw user text. It is a pure function: values that are not explicitly
// present stay unset and mean "unconstrained" downstream.
func Parse(text string) *parts.Query {
	q := &parts.Query{Raw: text}
	lower := strings.ToLower(text)

	if budget, ok := parseBudget(lower); ok {
		q.Budget = &budget
	}
	q.Purpose = parsePurpose(lower)
	q.Cooler = firstHit(lower, map[string][]string{
		"liquid": liquidKeywords,
		"air":    airKeywords,
	}, []string{"liquid", "air"})
	q.Platform = firstHit(lower, map[string][]string{
		"intel": intelKeywords,
		"amd":   amdKeywords,
	}, []string{"intel", "amd"})

	return q
}

// parseBudget returns the first amount followed by a currency unit
// token, with an explicit presence flag instead of a zero sentinel.
func parseBudget(lower string) (int, bool) {
	if m := reManwon.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			return n * 10_000, true
		}
	}
	if m := reWon.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			return n, true
		}
	}
	if m := reBare.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil && n >= 100_000 {
			return n, true
		}
	}
	return 0, false
}

func parsePurpose(lower string) string {
	for _, entry := range purposeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.purpose
			}
		}
	}
	return ""
}

// firstHit checks candidate values in the given order and returns the
// first whose keyword list matches, or "" when nothing matches.
func firstHit(lower string, keywords map[string][]string, order []string) string {
	for _, value := range order {
		for _, kw := range keywords[value] {
			if strings.Contains(lower, kw) {
				return value
			}
		}
	}
	return ""
}
