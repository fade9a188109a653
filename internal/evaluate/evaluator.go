package evaluate

import (
	"context"
	"fmt"
	"io"

	"github.com/rmansour/kashef/internal/sentiment"
)

// PreviewRunes is how much of each input text is echoed back.
const PreviewRunes = 80

// Evaluator runs texts through a sentiment classifier sequentially and
// prints one result per text: a preview of the input, the predicted label
// and the confidence. Any classification failure aborts the run.
type Evaluator struct {
	classifier sentiment.Classifier
	out        io.Writer
}

// New creates an Evaluator writing results to out.
func New(classifier sentiment.Classifier, out io.Writer) *Evaluator {
	return &Evaluator{classifier: classifier, out: out}
}

// RunSamples evaluates the fixed demonstration samples, printing the
// hand-assigned polarity next to the model's verdict. The two need not
// agree; the expected tag is informational.
func (e *Evaluator) RunSamples(ctx context.Context, samples []sentiment.Sample) error {
	for i, sample := range samples {
		result, err := e.classifier.Classify(ctx, sample.Text)
		if err != nil {
			return fmt.Errorf("classify sample %d: %w", i+1, err)
		}

		fmt.Fprintf(e.out, "Text:      %s\n", Preview(sample.Text))
		fmt.Fprintf(e.out, "Expected:  %s\n", sample.Expected)
		fmt.Fprintf(e.out, "Sentiment: %s (%.2f)\n\n", result.Label, result.Score)
	}

	return nil
}

// RunTexts evaluates arbitrary texts with the same output format, minus the
// expected tag.
func (e *Evaluator) RunTexts(ctx context.Context, texts []string) error {
	for i, text := range texts {
		result, err := e.classifier.Classify(ctx, text)
		if err != nil {
			return fmt.Errorf("classify text %d: %w", i+1, err)
		}

		fmt.Fprintf(e.out, "Text:      %s\n", Preview(text))
		fmt.Fprintf(e.out, "Sentiment: %s (%.2f)\n\n", result.Label, result.Score)
	}

	return nil
}

// Preview returns the first PreviewRunes characters of text. The cut is on
// rune boundaries so Arabic text is never split mid-character.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewRunes {
		return text
	}
	return string(runes[:PreviewRunes])
}
