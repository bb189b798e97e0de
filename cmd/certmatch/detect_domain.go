package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detectDomainCmd = &cobra.Command{
	Use:   "detect-domain",
	Short: "Classify a job title and skill list into a domain",
	RunE:  runDetectDomain,
}

var (
	detectTitle  string
	detectSkills []string
)

func init() {
	detectDomainCmd.Flags().StringVarP(&detectTitle, "title", "t", "", "Job title")
	detectDomainCmd.Flags().StringSliceVarP(&detectSkills, "skills", "s", nil, "Comma-separated skills")
	rootCmd.AddCommand(detectDomainCmd)
}

func runDetectDomain(cmd *cobra.Command, _ []string) error {
	if detectTitle == "" && len(detectSkills) == 0 {
		return fmt.Errorf("either --title or --skills is required")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var domain *string
	if d, ok := a.engine.DetectDomain(detectTitle, detectSkills); ok {
		domain = &d
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{"domain": domain})
}
