package main

import (
	"fmt"

	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Build a certification roadmap for a stored job",
	Long:  "Look up a stored job by --job-id, or the first job whose title contains --role, and recommend certifications for it.",
	RunE:  runRoadmap,
}

var (
	roadmapResume    string
	roadmapResumeKey string
	roadmapJobID     string
	roadmapRole      string
	roadmapReview    bool
)

func init() {
	roadmapCmd.Flags().StringVarP(&roadmapResume, "resume", "r", "", "Path to résumé (.txt, .pdf, .docx)")
	roadmapCmd.Flags().StringVar(&roadmapResumeKey, "resume-key", "", "Object key of a stored résumé")
	roadmapCmd.Flags().StringVar(&roadmapJobID, "job-id", "", "Stored job ID")
	roadmapCmd.Flags().StringVar(&roadmapRole, "role", "", "Target role, used when --job-id is not given")
	roadmapCmd.Flags().BoolVar(&roadmapReview, "review", false, "Ask the language model for a written review")
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	if roadmapJobID == "" && roadmapRole == "" {
		return fmt.Errorf("either --job-id or --role is required")
	}
	text, err := readResume(roadmapResume)
	if err != nil {
		return err
	}
	req := &types.RoadmapRequest{
		JobID:      roadmapJobID,
		ResumeText: text,
		ResumeKey:  roadmapResumeKey,
		TargetRole: roadmapRole,
		Review:     roadmapReview,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.engine.Roadmap(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("roadmap failed: %w", err)
	}

	if p := a.printer(); p != nil {
		p.PrintRoadmap(report)
	}
	return writeJSON(cmd.OutOrStdout(), report)
}
