// Package nutrition parses raw OCR text from nutrition labels into
// structured nutrient values.
//
// Label OCR output is messy: values drift onto the next line, zeros come
// back as the letter o, and a trailing "g" unit is often misread as a
// digit. The parser works by keyword proximity rather than layout, which
// holds up across the English and Spanish label formats the app sees.
package nutrition

import (
	"regexp"
	"strconv"
	"strings"
)

// Facts holds the nutrient values extracted from one label. Gram values
// per serving, plus the servings-per-container count.
type Facts struct {
	Protein           float64 `json:"protein"`
	TotalFat          float64 `json:"total_fat"`
	TotalCarbohydrate float64 `json:"total_carbohydrate"`
	DietaryFiber      float64 `json:"dietary_fiber"`
	TotalSugars       float64 `json:"total_sugars"`
	Servings          float64 `json:"servings"`
}

// defaultValue is assumed for any nutrient the parser cannot locate, so a
// partially readable label still produces a usable (non-zero) result.
const defaultValue = 1.0

// nutrient keys, in the fixed order they are processed.
const (
	keyProtein      = "protein"
	keyTotalFat     = "total_fat"
	keyCarbohydrate = "total_carbohydrate"
	keyDietaryFiber = "dietary_fiber"
	keyTotalSugars  = "total_sugars"
	keyServings     = "servings"
)

var processOrder = []string{
	keyProtein, keyTotalFat, keyCarbohydrate, keyDietaryFiber, keyTotalSugars, keyServings,
}

// keywords per nutrient, most specific first. The odd entries ("total fal",
// "diary tiber") are recurring OCR misreads worth matching directly.
var keywords = map[string][]string{
	keyTotalFat:     {"total fat", "total fal", "fat", "grasa total", "grasa"},
	keyProtein:      {"protein", "proteínas", "proteína"},
	keyCarbohydrate: {"total carbohydrate", "carbohydrate", "carbohidrato total", "carbohidrato"},
	keyDietaryFiber: {"dietary fiber", "fiber", "fibra dietética", "fibra", "diary tiber", "deary her"},
	keyTotalSugars:  {"total sugars", "azúcares totales", "sugars", "azúcares"},
	keyServings:     {"servings per container", "raciones por envase"},
}

// prioritySugarTerms are searched across the whole label before the broader
// sugar keywords, so "total sugars" is never shadowed by an earlier plain
// "sugars" line (e.g. "includes added sugars").
var prioritySugarTerms = []string{"total sugars", "azúcares totales"}

var (
	lessThanOneGram = regexp.MustCompile(`(?i)(<|less than)\s*1\s*g`)
	numberPattern   = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)
	zeroPatterns    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b0\s*g\b`),
		regexp.MustCompile(`(?i)\bo\s*g\b`),
		regexp.MustCompile(`(?i)\bzero\s*g\b`),
	}
)

var zeroPhrases = []string{"not a significant source", "insignificant source"}

// ParseLabelText extracts nutrient values from raw OCR text. Nutrients that
// cannot be located default to 1.0.
func ParseLabelText(text string) Facts {
	lines := splitLines(strings.ToLower(text))

	values := map[string]float64{}
	for _, key := range processOrder {
		values[key] = defaultValue
	}

	for _, key := range processOrder {
		lineIdx, term := findKeyword(lines, key)
		if lineIdx < 0 {
			continue
		}

		line := lines[lineIdx]
		nextLine := ""
		if lineIdx+1 < len(lines) {
			nextLine = lines[lineIdx+1]
		}

		if key == keyServings {
			if v, ok := findNearestNumber(line, false); ok {
				values[key] = v
			}
			continue
		}

		segment := line[strings.Index(line, term)+len(term):]

		value, found := findNearestNumber(segment, true)
		source := strings.TrimSpace(segment)
		if !found && nextLine != "" {
			value, found = findNearestNumber(nextLine, true)
			source = strings.TrimSpace(nextLine)
		}

		if found {
			values[key] = applyMisreadHeuristics(key, value, source)
			continue
		}

		if hasExplicitZero(segment, line, nextLine) || hasZeroPhrase(line, nextLine) {
			values[key] = 0
		}
	}

	return Facts{
		Protein:           values[keyProtein],
		TotalFat:          values[keyTotalFat],
		TotalCarbohydrate: values[keyCarbohydrate],
		DietaryFiber:      values[keyDietaryFiber],
		TotalSugars:       values[keyTotalSugars],
		Servings:          values[keyServings],
	}
}

// splitLines returns the non-empty trimmed lines of the label text.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// findKeyword locates the first line containing a keyword for the nutrient
// and returns the line index and the matched term. Total sugars gets a
// whole-label pass over its priority terms first.
func findKeyword(lines []string, key string) (int, string) {
	if key == keyTotalSugars {
		for i, line := range lines {
			for _, term := range prioritySugarTerms {
				if strings.Contains(line, term) {
					return i, term
				}
			}
		}
	}
	for i, line := range lines {
		for _, term := range keywords[key] {
			if strings.Contains(line, term) {
				return i, term
			}
		}
	}
	return -1, ""
}

// findNearestNumber finds the first plausible numeric value in a text
// segment. With prioritizeGrams set, numbers carrying a gram unit win;
// percentages (daily values) never count. "<1g" reads as 0.5 by convention.
func findNearestNumber(segment string, prioritizeGrams bool) (float64, bool) {
	// OCR regularly returns zeros as the letter o.
	processed := strings.NewReplacer("o", "0", "O", "0").Replace(segment)

	if lessThanOneGram.MatchString(processed) {
		return 0.5, true
	}

	numbers := extractNumbers(processed)

	if prioritizeGrams {
		for _, n := range numbers {
			if n.unit == unitGram {
				return n.value, true
			}
		}
	} else {
		// Servings mode: skip gram and percent values, prefer the first
		// non-zero candidate.
		var candidates []numberToken
		for _, n := range numbers {
			if n.unit == unitNone {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) > 0 {
			for _, n := range candidates {
				if n.value != 0 {
					return n.value, true
				}
			}
			return candidates[0].value, true
		}
	}

	// General fallback: first number that is not a percentage.
	for _, n := range numbers {
		if n.unit != unitPercent {
			return n.value, true
		}
	}
	return 0, false
}

type unit int

const (
	unitNone unit = iota
	unitGram
	unitPercent
)

type numberToken struct {
	value float64
	unit  unit
}

// extractNumbers tokenizes all numbers in a segment together with the unit
// that follows them.
func extractNumbers(segment string) []numberToken {
	var tokens []numberToken
	for _, loc := range numberPattern.FindAllStringIndex(segment, -1) {
		value, err := strconv.ParseFloat(segment[loc[0]:loc[1]], 64)
		if err != nil {
			continue
		}
		tokens = append(tokens, numberToken{value: value, unit: unitAfter(segment[loc[1]:])})
	}
	return tokens
}

// unitAfter classifies the unit immediately following a number, skipping
// whitespace.
func unitAfter(rest string) unit {
	rest = strings.TrimLeft(rest, " \t")
	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, "gram"), strings.HasPrefix(lower, "g"):
		// A bare "g" only counts as a unit when not starting a longer word.
		if len(lower) > 1 && lower[1] >= 'a' && lower[1] <= 'z' && !strings.HasPrefix(lower, "gram") {
			return unitNone
		}
		return unitGram
	case strings.HasPrefix(rest, "%"):
		return unitPercent
	}
	return unitNone
}

// applyMisreadHeuristics corrects two systematic OCR unit misreads where the
// trailing "g" is fused into the number itself.
func applyMisreadHeuristics(key string, value float64, source string) float64 {
	intStr := strconv.Itoa(int(value))

	// "4g" read as "40": a bare two-digit value ending in zero on a
	// nutrient that is rarely >= 10 per serving.
	if key == keyCarbohydrate || key == keyDietaryFiber || key == keyTotalSugars {
		if value >= 10 && source == intStr && strings.HasSuffix(intStr, "0") {
			value = value / 10
			intStr = strconv.Itoa(int(value))
		}
	}

	// "4g" read as "49": a bare value ending in nine.
	if source == intStr && strings.HasSuffix(source, "9") && len(source) > 1 {
		if corrected, err := strconv.ParseFloat(source[:len(source)-1], 64); err == nil {
			value = corrected
		}
	}

	return value
}

// hasExplicitZero reports whether the label explicitly states a zero-gram
// value near the keyword. The segment after the keyword wins; the next line
// is consulted only when the keyword ended its line.
func hasExplicitZero(segment, line, nextLine string) bool {
	for _, pattern := range zeroPatterns {
		if segment != "" && pattern.MatchString(segment) {
			return true
		}
		if pattern.MatchString(line) {
			return true
		}
	}
	if strings.TrimSpace(segment) == "" && nextLine != "" {
		for _, pattern := range zeroPatterns {
			if pattern.MatchString(nextLine) {
				return true
			}
		}
	}
	return false
}

// hasZeroPhrase reports the "not a significant source" wording that labels
// use instead of a zero value.
func hasZeroPhrase(line, nextLine string) bool {
	for _, phrase := range zeroPhrases {
		if strings.Contains(line, phrase) || strings.Contains(nextLine, phrase) {
			return true
		}
	}
	return false
}
