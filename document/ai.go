package document

import "fmt"

// Action is a mock AI rewrite.
type Action string

const (
	Improve   Action = "improve"
	Summarize Action = "summarize"
)

const (
	improvePrefix   = "[AI Enhanced] "
	improveSuffix   = "\n\nThis content has been improved with better clarity, grammar, and structure for enhanced readability and professionalism."
	summaryPrefix   = "[AI Summary] "
	summaryMaxRunes = 100
)

// Transform computes the content an AI action would produce for b. Only
// editable paragraphs and headings can be transformed.
func Transform(b *Block, action Action) (string, error) {
	if b == nil {
		return "", ErrBlockNotFound
	}
	if !b.Editable {
		return "", fmt.Errorf("%w: %s", ErrReadOnly, b.ID)
	}
	if !b.HasText() {
		return "", fmt.Errorf("%w: %s on %s", ErrUnsupportedAction, action, b.Type)
	}
	switch action {
	case Improve:
		return improvePrefix + b.Content + improveSuffix, nil
	case Summarize:
		r := []rune(b.Content)
		if len(r) > summaryMaxRunes {
			return summaryPrefix + string(r[:summaryMaxRunes]) + "...", nil
		}
		return summaryPrefix + b.Content, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}
}
