package main

import (
	"fmt"

	"github.com/jonathan/cert-roadmap/internal/document"
	"github.com/spf13/cobra"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract known skills from text or a document",
	Long:  "Extract the known skills mentioned in --text or in a .txt, .pdf or .docx file given with --in.",
	RunE:  runExtractSkills,
}

var (
	extractText  string
	extractInput string
)

func init() {
	extractSkillsCmd.Flags().StringVar(&extractText, "text", "", "Text to extract skills from")
	extractSkillsCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path to a text, PDF or DOCX file")
	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	if extractText == "" && extractInput == "" {
		return fmt.Errorf("either --text or --in is required")
	}
	if extractText != "" && extractInput != "" {
		return fmt.Errorf("cannot use --text with --in")
	}

	text := extractText
	if extractInput != "" {
		var err error
		if text, err = document.ExtractFile(extractInput); err != nil {
			return err
		}
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	skills, err := a.engine.ExtractSkills(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("failed to extract skills: %w", err)
	}

	if p := a.printer(); p != nil {
		p.PrintSkills("EXTRACTED SKILLS", skills)
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{"skills": skills})
}

