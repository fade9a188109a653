package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rmansour/kashef/internal/evaluate"
	"github.com/rmansour/kashef/internal/model"
	"github.com/rmansour/kashef/internal/sentiment"
	"github.com/spf13/cobra"
)

var demoTimeout time.Duration

// demoCmd runs the three built-in Arabic samples through the classifier.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Classify the three built-in Arabic sample texts",
	Long: `Demo runs three fixed Arabic texts (one negative, one positive, one
neutral) through the configured sentiment model and prints, for each, a
preview of the text, the hand-assigned polarity, and the model's label with
its confidence.

The expected tag is informational only: the model is a black box and the
neutral sample in particular is not guaranteed to come back neutral.

Example:
  kashef demo
  kashef demo --provider openai --model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	addClassifierFlags(demoCmd)
	demoCmd.Flags().DurationVar(&demoTimeout, "timeout", 3*time.Minute, "overall timeout (the remote model may need to load first)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), demoTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating %d samples...\n\n", len(sentiment.DemoSamples))
	}

	evaluator := evaluate.New(classifier, os.Stdout)
	if err := evaluator.RunSamples(ctx, sentiment.DemoSamples); err != nil {
		return fmt.Errorf("demo failed: %w", err)
	}

	return nil
}
