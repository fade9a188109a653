package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rmansour/kashef/internal/evaluate"
	"github.com/rmansour/kashef/internal/model"
	"github.com/spf13/cobra"
)

var classifyTimeout time.Duration

// classifyCmd classifies arbitrary texts passed as arguments.
var classifyCmd = &cobra.Command{
	Use:   "classify <text>...",
	Short: "Classify the sentiment of one or more texts",
	Long: `Classify sends each argument to the configured sentiment model and
prints a preview of the text, the predicted label and the confidence.

Example:
  kashef classify "ارتفعت الأسعار بشكل كبير هذا الشهر"
  kashef classify --provider ollama --model llama3.1:8b "النمو الاقتصادي يتحسن"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	addClassifierFlags(classifyCmd)
	classifyCmd.Flags().DurationVar(&classifyTimeout, "timeout", 3*time.Minute, "overall timeout")
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), classifyTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	evaluator := evaluate.New(classifier, os.Stdout)
	if err := evaluator.RunTexts(ctx, args); err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	return nil
}
