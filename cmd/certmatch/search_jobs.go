package main

import (
	"github.com/jonathan/cert-roadmap/internal/types"
	"github.com/spf13/cobra"
)

var searchJobsCmd = &cobra.Command{
	Use:   "search-jobs",
	Short: "List stored jobs whose title contains a phrase",
	RunE:  runSearchJobs,
}

var searchTitle string

func init() {
	searchJobsCmd.Flags().StringVarP(&searchTitle, "title", "t", "", "Title phrase (required)")
	_ = searchJobsCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(searchJobsCmd)
}

func runSearchJobs(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	jobs, err := a.engine.SearchJobs(cmd.Context(), searchTitle)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []types.JobSummary{}
	}

	if p := a.printer(); p != nil {
		p.PrintJobs(jobs)
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{"jobs": jobs})
}
