package main

import (
	"fmt"

	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare a résumé against live job descriptions for a role",
	Long: "Fetch job descriptions for --role, build a role profile, find the skills the résumé lacks " +
		"and recommend certifications that cover them.",
	RunE: runAnalyze,
}

var (
	analyzeResume    string
	analyzeResumeKey string
	analyzeRole      string
	analyzeLocation  string
	analyzeReview    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to résumé (.txt, .pdf, .docx)")
	analyzeCmd.Flags().StringVar(&analyzeResumeKey, "resume-key", "", "Object key of a stored résumé")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target role (required)")
	analyzeCmd.Flags().StringVar(&analyzeLocation, "location", "", "Job location (default \"united states\")")
	analyzeCmd.Flags().BoolVar(&analyzeReview, "review", false, "Ask the language model for a written review")
	_ = analyzeCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	text, err := readResume(analyzeResume)
	if err != nil {
		return err
	}
	req := &types.AnalyzeSkillsRequest{
		ResumeText: text,
		ResumeKey:  analyzeResumeKey,
		TargetRole: analyzeRole,
		Location:   analyzeLocation,
		Review:     analyzeReview,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request (need --resume or --resume-key): %w", err)
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.engine.Analyze(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if p := a.printer(); p != nil {
		p.PrintAnalysis(report)
	}
	return writeJSON(cmd.OutOrStdout(), report)
}
