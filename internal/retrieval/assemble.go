package retrieval

import (
	"fmt"
	"strings"

	"github.com/furrowhq/furrow/internal/crop"
)

// AssembleAnswer appends a citation block to answerText listing each
// source crop with its similarity to two decimals, in retrieval order.
// With no sources the answer is returned unchanged; aggregate-tool
// answers never pass through here.
func AssembleAnswer(answerText string, sources []crop.Retrieved) string {
	if len(sources) == 0 {
		return answerText
	}

	var b strings.Builder
	b.WriteString(answerText)
	b.WriteString("\n\nSources:\n")
	for i, s := range sources {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (Similarity: %.2f)", s.CropName, s.Similarity)
	}
	return b.String()
}
