package cli

import (
	"github.com/spf13/cobra"
)

func newResumeCommand(flags *rootFlags) *cobra.Command {
	var career, text, file string
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Compare a resume against the skills a career requires",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readText(cmd, text, file)
			if err != nil {
				return err
			}
			svc, err := flags.service(false)
			if err != nil {
				return err
			}
			report, err := svc.AnalyzeResume(cmd.Context(), body, trim(career))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&career, "career", "", "Target career")
	cmd.Flags().StringVar(&text, "text", "", "Resume text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Resume text file, \"-\" for stdin")
	_ = cmd.MarkFlagRequired("career")
	return cmd
}

func newInterviewCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Mock interview questions and answer scoring",
	}

	var qCareer string
	question := &cobra.Command{
		Use:   "question",
		Short: "Draw a question for a career",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := flags.service(false)
			if err != nil {
				return err
			}
			career := trim(qCareer)
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"career":   career,
				"question": svc.GenerateQuestion(career),
			})
		},
	}
	question.Flags().StringVar(&qCareer, "career", "", "Career to draw from")

	var aCareer, aQuestion, aText, aFile string
	answer := &cobra.Command{
		Use:   "answer",
		Short: "Score an answer to a question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readText(cmd, aText, aFile)
			if err != nil {
				return err
			}
			svc, err := flags.service(false)
			if err != nil {
				return err
			}
			turn, err := svc.ScoreAnswer(cmd.Context(), trim(aCareer), aQuestion, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), turn)
		},
	}
	answer.Flags().StringVar(&aCareer, "career", "", "Career the question belongs to")
	answer.Flags().StringVar(&aQuestion, "question", "", "Question that was asked")
	answer.Flags().StringVar(&aText, "text", "", "Answer text")
	answer.Flags().StringVarP(&aFile, "file", "f", "", "Answer text file, \"-\" for stdin")

	cmd.AddCommand(question, answer)
	return cmd
}

func newPersonalityCommand(flags *rootFlags) *cobra.Command {
	var text, file string
	cmd := &cobra.Command{
		Use:   "personality",
		Short: "Read Big Five trait scores from free text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readText(cmd, text, file)
			if err != nil {
				return err
			}
			svc, err := flags.service(false)
			if err != nil {
				return err
			}
			reading, err := svc.AnalyzePersonality(cmd.Context(), body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), reading)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Text to analyze")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Text file, \"-\" for stdin")
	return cmd
}

func newMarketCommand(flags *rootFlags) *cobra.Command {
	var career string
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Show market outlook and learning roadmap for a career",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := flags.service(false)
			if err != nil {
				return err
			}
			c := trim(career)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"career":  c,
				"market":  svc.Market(c),
				"roadmap": svc.Roadmap(c),
			})
		},
	}
	cmd.Flags().StringVar(&career, "career", "", "Career to look up")
	_ = cmd.MarkFlagRequired("career")
	return cmd
}
