package cli

import (
	"encoding/json"
	"fmt"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/spf13/cobra"
)

type assessOutput struct {
	Status string                 `json:"status"`
	Result model.AssessmentResult `json:"result"`
}

func newAssessCommand(flags *rootFlags) *cobra.Command {
	var (
		file string
		in   model.RawAssessmentInput
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run the full assessment pipeline for one candidate",
		Long:  "Reads a JSON assessment from --file (\"-\" for stdin) or from the individual flags and prints the result. Stage failures are reported as issues; only a failed run exits non-zero.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				raw, err := readText(cmd, "", file)
				if err != nil {
					return err
				}
				if err := json.Unmarshal([]byte(raw), &in); err != nil {
					return fmt.Errorf("decode assessment: %w", err)
				}
			}
			svc, err := flags.service(true)
			if err != nil {
				return err
			}
			res, err := svc.Assess(cmd.Context(), "", in)
			status := model.StatusOf(res, err)
			if status == model.StatusFailed {
				return err
			}
			return printJSON(cmd.OutOrStdout(), assessOutput{Status: status, Result: res})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "JSON assessment file, \"-\" for stdin")
	f.Float64Var(&in.CGPA, "cgpa", 0, "CGPA on a 0-10 scale")
	f.IntVar(&in.Aptitude, "aptitude", 0, "Aptitude score 0-100")
	f.IntVar(&in.Coding, "coding", 0, "Coding skill 1-10")
	f.IntVar(&in.Communication, "communication", 0, "Communication skill 1-10")
	f.IntVar(&in.Leadership, "leadership", 0, "Leadership skill 1-10")
	f.StringVar(&in.InterestDomain, "interest", "", "Interest domain, e.g. AI/ML")
	return cmd
}
