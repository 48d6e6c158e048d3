// Package cli implements careerctl, the offline companion to the HTTP service.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	app "github.com/okian/careerlens/internal/app"
	"github.com/okian/careerlens/internal/domain/classifier"
	"github.com/okian/careerlens/internal/domain/taxonomy"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	model        string
	taxonomy     string
	trainSamples int
	seed         int64
	logLevel     string
}

// NewRootCommand builds the careerctl command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "careerctl",
		Short:         "Career assessment toolkit",
		Long:          "careerctl trains career models and runs assessments, resume gap analysis, interview scoring and personality readings from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return logger.SetLevelString(flags.logLevel)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.model, "model", "", "Path to a trained model artifact (trains on synthetic data when empty)")
	pf.StringVar(&flags.taxonomy, "taxonomy", "", "Path to a YAML career catalog (built-in catalog when empty)")
	pf.IntVar(&flags.trainSamples, "train-samples", 1000, "Synthetic samples used when no model is given")
	pf.Int64Var(&flags.seed, "seed", 42, "Seed for synthetic training and question order")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		newTrainCommand(),
		newAssessCommand(flags),
		newResumeCommand(flags),
		newInterviewCommand(flags),
		newPersonalityCommand(flags),
		newMarketCommand(flags),
		newLoadTestCommand(),
	)
	return root
}

// Execute runs careerctl with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// service builds an unstarted Service around the configured catalog and model.
func (f *rootFlags) service(withModel bool) (*app.Service, error) {
	opts := []app.Option{
		app.WithRandSource(rand.NewSource(f.seed)), //nolint:gosec // question order only
		app.WithLogger(logger.Named("careerctl")),
	}
	if f.taxonomy != "" {
		cat, err := taxonomy.LoadFile(f.taxonomy)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
		opts = append(opts, app.WithCatalog(cat))
	}
	if withModel {
		bundle, err := f.bundle()
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithBundle(bundle))
	}
	return app.New(opts...), nil
}

func (f *rootFlags) bundle() (*classifier.Bundle, error) {
	if f.model != "" {
		b, err := classifier.Load(f.model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return b, nil
	}
	rng := rand.New(rand.NewSource(f.seed)) //nolint:gosec // reproducible synthetic data
	b, err := classifier.NewTrainer(classifier.WithSeed(f.seed)).Train(classifier.Synthetic(f.trainSamples, rng))
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}
	return b, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readText returns inline text or the contents of path; "-" reads stdin.
func readText(cmd *cobra.Command, inline, path string) (string, error) {
	switch {
	case inline != "":
		return inline, nil
	case path == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("%w: provide --text or --file", ErrMissingInput)
	}
}

func trim(s string) string { return strings.TrimSpace(s) }
