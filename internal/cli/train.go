package cli

import (
	"fmt"
	"math/rand"

	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/spf13/cobra"
)

func newTrainCommand() *cobra.Command {
	var (
		out     string
		kind    string
		samples int
		trees   int
		depth   int
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a career model on synthetic data and write the artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible synthetic data
			trainer := classifier.NewTrainer(
				classifier.WithKind(kind),
				classifier.WithTrees(trees),
				classifier.WithMaxDepth(depth),
				classifier.WithSeed(seed),
			)
			bundle, err := trainer.Train(classifier.Synthetic(samples, rng))
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			if err := classifier.Save(out, bundle); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"path":     out,
				"kind":     bundle.Model.Kind(),
				"careers":  bundle.Careers,
				"accuracy": bundle.Accuracy,
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "Where to write the model artifact")
	f.StringVar(&kind, "kind", classifier.KindForest, "Model kind: forest or softmax")
	f.IntVar(&samples, "samples", 2000, "Synthetic samples to draw")
	f.IntVar(&trees, "trees", 50, "Trees in the forest")
	f.IntVar(&depth, "max-depth", 10, "Maximum tree depth")
	f.Int64Var(&seed, "seed", 42, "Random seed")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
