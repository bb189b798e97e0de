// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/cert-roadmap/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintSkills outputs an extracted skill list under title.
func (p *Printer) PrintSkills(title string, skills []string) {
	if len(skills) == 0 {
		p.printBox(title, "(no known skills found)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d skills\n\n", len(skills)))
	for _, s := range skills {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoleProfile outputs the most frequent skills of a role profile with one sample context each.
func (p *Printer) PrintRoleProfile(profile *types.RoleProfile) {
	if profile == nil || len(profile.Frequencies) == 0 {
		return
	}

	skills := make([]string, 0, len(profile.Frequencies))
	for s := range profile.Frequencies {
		skills = append(skills, s)
	}
	sort.Slice(skills, func(i, j int) bool {
		fi, fj := profile.Frequencies[skills[i]], profile.Frequencies[skills[j]]
		if fi != fj {
			return fi > fj
		}
		return skills[i] < skills[j]
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Distinct skills: %d\n\n", len(skills)))
	count := min(len(skills), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := skills[i]
		sb.WriteString(fmt.Sprintf("%-24s ×%d\n", s, profile.Frequencies[s]))
		if ctxs := profile.Contexts[s]; len(ctxs) > 0 {
			sb.WriteString(fmt.Sprintf("    \"%s\"\n", ctxs[0]))
		}
	}
	if len(skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(skills)-maxItemsToShow))
	}

	p.printBox("ROLE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the ranked certifications.
func (p *Printer) PrintRecommendations(domain string, recs []types.Recommendation) {
	var sb strings.Builder
	if domain != "" {
		sb.WriteString(fmt.Sprintf("Domain: %s\n\n", domain))
	}
	if len(recs) == 0 {
		sb.WriteString("(no certification reached the relevance threshold)")
		p.printBox("RECOMMENDED CERTIFICATIONS", sb.String())
		return
	}

	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Name))
		sb.WriteString(fmt.Sprintf("    Score: %d\n", r.RelevanceScore))
		if len(r.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Covers: %s\n", strings.Join(r.MatchedSkills, ", ")))
		}
		if r.URL != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", r.URL))
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDED CERTIFICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a skill gap analysis.
func (p *Printer) PrintAnalysis(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s\n", report.TargetRole))
	if report.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", report.Location))
	}
	sb.WriteString(fmt.Sprintf("Jobs:     %d\n\n", report.JobCount))
	sb.WriteString(fmt.Sprintf("Résumé skills:  %s\n", listOrNone(report.ResumeSkills)))
	sb.WriteString(fmt.Sprintf("Job skills:     %s\n", listOrNone(report.JobSkills)))
	sb.WriteString(fmt.Sprintf("Missing skills: %s", listOrNone(report.MissingSkills)))
	p.printBox("SKILL GAP ANALYSIS", sb.String())

	p.PrintRoleProfile(report.Profile)
	p.PrintRecommendations("", report.RecommendedCertificates)
	p.PrintReview(report.Review)
}

// PrintRoadmap outputs a certification roadmap for a stored job.
func (p *Printer) PrintRoadmap(report *types.RoadmapReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:      %s\n", report.Job.Title))
	if report.Job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", report.Job.Company))
	}
	if report.Job.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", report.Job.Location))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Job skills:    %s\n", listOrNone(report.JobSkills)))
	sb.WriteString(fmt.Sprintf("Résumé skills: %s", listOrNone(report.ResumeSkills)))
	p.printBox("CERTIFICATION ROADMAP", sb.String())

	p.PrintRecommendations(report.Domain, report.RecommendedCertificates)
	p.PrintReview(report.Review)
}

// PrintJobs outputs stored job search results.
func (p *Printer) PrintJobs(jobs []types.JobSummary) {
	if len(jobs) == 0 {
		p.printBox("JOBS", "(no matching jobs)")
		return
	}

	var sb strings.Builder
	for _, j := range jobs {
		sb.WriteString(fmt.Sprintf("%s\n", j.Title))
		sb.WriteString(fmt.Sprintf("    %s", j.ID))
		if j.Company != "" {
			sb.WriteString(fmt.Sprintf(" · %s", j.Company))
		}
		sb.WriteString("\n")
	}
	p.printBox(fmt.Sprintf("JOBS (%d)", len(jobs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReview outputs a generated review, wrapped to the box width.
func (p *Printer) PrintReview(review string) {
	review = strings.TrimSpace(review)
	if review == "" {
		return
	}
	p.printBox("REVIEW", wrap(review, boxWidth-4))
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// wrap breaks text into lines of at most width runes at word boundaries. Existing
// newlines are kept.
func wrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
