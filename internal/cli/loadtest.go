package cli

import (
	"runtime"
	"time"

	"github.com/okian/careerlens/internal/loadgen"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/spf13/cobra"
)

func newLoadTestCommand() *cobra.Command {
	cfg := loadgen.Config{}
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Submit synthetic assessments to a running service and verify they settle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := loadgen.Run(cmd.Context(), cfg, logger.Named("loadtest"))
			if stats != nil {
				if perr := printJSON(cmd.OutOrStdout(), stats); perr != nil {
					return perr
				}
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	f.IntVar(&cfg.Submissions, "submissions", 1000, "Distinct submissions to send")
	f.Float64Var(&cfg.DuplicateRatio, "duplicates", 0.1, "Fraction of submissions resent to exercise deduplication")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*2, "Concurrent HTTP workers")
	f.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	f.DurationVar(&cfg.SettleTimeout, "settle-timeout", 2*time.Minute, "How long to wait for records to settle")
	f.Int64Var(&cfg.Seed, "seed", 42, "Seed for synthetic inputs")
	f.StringVarP(&cfg.OutputFile, "output", "o", "", "Write generated submissions to this file")
	return cmd
}
