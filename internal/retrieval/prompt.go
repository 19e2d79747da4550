package retrieval

import (
	"fmt"
	"strings"

	"github.com/furrowhq/furrow/internal/crop"
)

// promptPreamble is the system persona for grounded answering. The
// model is told to refuse rather than fabricate when the retrieved
// entries do not cover the question.
const promptPreamble = "You are an expert farm management assistant helping a farmer analyze and optimize crop decisions. " +
	"Use the crop data provided to answer the user's questions clearly and specifically. " +
	"Base all answers strictly on the information provided below. " +
	"If the data is insufficient, say so instead of guessing. Keep answers practical and focused on numbers, comparisons, and insights.\n\n" +
	"Relevant crop data:\n"

// ComposePrompt renders the system prompt for the completion call: the
// fixed persona preamble followed by one block per retrieved entry, in
// the order given (similarity descending as returned by Search).
func ComposePrompt(entries []crop.Retrieved) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	for _, e := range entries {
		fmt.Fprintf(&b, "Crop: %s\nDescription: %s\n\n", e.CropName, e.Description)
	}
	return b.String()
}
