package recommend

import (
	"regexp"
	"strings"
)

var (
	wordRe         = regexp.MustCompile(`[a-zA-Z]+`)
	sourceSuffixRe = regexp.MustCompile(`\s*(news|sport|sports|india|world|tech|entertainment)\s*$`)
)

// stopWords are dropped from titles before keyword scoring
var stopWords = func() map[string]struct{} {
	words := `the a an is are was were be been being have has had do does did will would could should may might
		must shall can need dare to of in for on with at by from as into through during before after above below
		between under again further then once here there when where why how all each few more most other some such
		no nor not only own same so than too very just and but if or because until while this that these those what
		which who whom its it he she they them his her their my your our says said new news latest today now get got
		make made`
	res := map[string]struct{}{}
	for _, w := range strings.Fields(words) {
		res[w] = struct{}{}
	}
	return res
}()

// ExtractKeywords returns distinct lower-cased words of text longer than two letters,
// skipping stop words. Order of first occurrence is kept.
func ExtractKeywords(text string) []string {
	var res []string
	seen := map[string]bool{}
	for _, w := range wordRe.FindAllString(text, -1) {
		w = strings.ToLower(w)
		if len(w) <= 2 || seen[w] {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		seen[w] = true
		res = append(res, w)
	}
	return res
}

// NormalizeSource reduces a source name to its outlet, i.e. "BBC Sport" -> "bbc".
// One trailing section word is stripped; if nothing is left the lower-cased source is used.
func NormalizeSource(source string) string {
	lower := strings.ToLower(source)
	res := strings.TrimSpace(sourceSuffixRe.ReplaceAllString(strings.TrimSpace(lower), ""))
	if res == "" {
		return lower
	}
	return res
}

// NormalizeCategory makes the category key used in profiles and article partitions
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}
