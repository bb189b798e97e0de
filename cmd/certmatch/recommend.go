package main

import (
	"fmt"

	"github.com/jonathan/cert-roadmap/internal/document"
	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank certifications for a skill list",
	Long: "Rank catalog certifications for --skills. Job description files given with --description " +
		"are turned into a role profile that orders the skills by how often the role asks for them.",
	RunE: runRecommend,
}

var (
	recommendSkills       []string
	recommendTitle        string
	recommendDescriptions []string
)

func init() {
	recommendCmd.Flags().StringSliceVarP(&recommendSkills, "skills", "s", nil, "Comma-separated skills (required)")
	recommendCmd.Flags().StringVarP(&recommendTitle, "title", "t", "", "Job title used for domain filtering")
	recommendCmd.Flags().StringArrayVar(&recommendDescriptions, "description", nil, "Path to a job description file (repeatable)")
	_ = recommendCmd.MarkFlagRequired("skills")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	req := &types.RecommendRequest{Skills: recommendSkills, JobTitle: recommendTitle}
	for _, path := range recommendDescriptions {
		text, err := document.ExtractFile(path)
		if err != nil {
			return err
		}
		req.JobDescriptions = append(req.JobDescriptions, text)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.engine.Recommend(cmd.Context(), req)
	if err != nil {
		return err
	}

	if p := a.printer(); p != nil {
		p.PrintRoleProfile(result.Profile)
		p.PrintRecommendations(result.Domain, result.Certifications)
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
