package crop

import (
	"strings"
	"unicode/utf8"
)

// knownCrops is the canonical crop vocabulary. Raw labels containing one
// of these tokens collapse onto it; first match wins, so multi-word
// tokens must precede any word they contain.
var knownCrops = []string{
	"kale", "lettuce", "squash", "tomato", "radish", "carrot", "beet",
	"onion", "pepper", "potato", "turnip", "eggplant", "arugula",
	"leek", "cabbage", "popcorn", "dry beans", "sweet potato",
}

// Normalize collapses a raw crop label onto the canonical vocabulary.
// "Kale Dino - Big Y A" and "Kale Russian" both become "Kale". Labels
// matching no known crop are title-cased as-is. Idempotent: normalizing
// a canonical name returns it unchanged.
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	// "sweet potato" must win over "potato"; scan multi-word tokens first.
	for _, crop := range knownCrops {
		if strings.Contains(crop, " ") && strings.Contains(lowered, crop) {
			return titleCase(crop)
		}
	}
	for _, crop := range knownCrops {
		if strings.Contains(lowered, crop) {
			return titleCase(crop)
		}
	}

	return titleCase(lowered)
}

// titleCase upper-cases the first rune of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
