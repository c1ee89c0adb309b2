package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/banhbao/phapdien/pkg/corpus"
	"github.com/banhbao/phapdien/pkg/dataset"
	"github.com/banhbao/phapdien/pkg/ingest"
	"github.com/banhbao/phapdien/pkg/pattern"
	"github.com/banhbao/phapdien/pkg/statute"
)

var (
	// lawStyle for the document title line
	lawStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	// chapterStyle for chapter headers
	chapterStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// articleStyle for article labels
	articleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// dimStyle for muted counts and metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// summaryBoxStyle for the run summary box
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("81")).
			Padding(0, 1)
)

// FormatOutline renders the parsed document as an indented tree with
// per-level counts.
func FormatOutline(w io.Writer, doc *statute.Document) {
	stats := doc.Statistics()

	fmt.Fprintln(w, lawStyle.Render(doc.Law))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d chương, %d điều, %d khoản, %d điểm",
		stats.Chapters, stats.Articles, stats.Clauses, stats.Points)))

	if doc.Preamble != nil {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Lời nói đầu:"), clip(doc.Preamble.Text, 60))
	}

	for _, chapter := range doc.Chapters {
		fmt.Fprintln(w, chapterStyle.Render(chapter.Header))
		for _, article := range chapter.Articles {
			label := articleStyle.Render(statute.ArticleKeyword + " " + article.Number)
			detail := dimStyle.Render(fmt.Sprintf("(%d khoản)", len(article.Clauses)))
			fmt.Fprintf(w, "  %s %s %s\n", label, clip(article.Content, 60), detail)
		}
	}
}

// FormatIngestSummary renders the post-run summary box.
func FormatIngestSummary(w io.Writer, load *dataset.Report, report *ingest.Report) {
	line1 := fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		dimStyle.Render("Rows:"), load.Rows,
		dimStyle.Render("Kept:"), load.Kept,
		dimStyle.Render("Filtered:"), load.FilteredOut,
		dimStyle.Render("Malformed:"), load.Malformed,
	)
	line2 := fmt.Sprintf("%s %d  %s %d  %s %d",
		dimStyle.Render("Articles:"), report.Articles,
		dimStyle.Render("Records:"), report.Records,
		dimStyle.Render("Truncated:"), report.Truncated,
	)
	line3 := fmt.Sprintf("%s %v", dimStyle.Render("Elapsed:"), report.Elapsed)

	content := lawStyle.Render("Ingest Complete") + "\n" + line1 + "\n" + line2 + "\n" + line3
	fmt.Fprintln(w, summaryBoxStyle.Render(content))
}

// FormatConventions renders the registry listing.
func FormatConventions(w io.Writer, conventions []*pattern.Convention) {
	for _, conv := range conventions {
		name := chapterStyle.Render(conv.Name)
		meta := dimStyle.Render(fmt.Sprintf("v%s  %s", conv.Version, conv.Language))
		fmt.Fprintf(w, "%s %s\n", name, meta)
		if conv.Description != "" {
			fmt.Fprintf(w, "  %s\n", conv.Description)
		}
	}
}

// FormatCorpusEntries renders the corpus listing, newest first.
func FormatCorpusEntries(w io.Writer, name string, entries []corpus.Entry) {
	fmt.Fprintln(w, lawStyle.Render(name))
	if len(entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  (empty)"))
		return
	}

	for _, entry := range entries {
		fmt.Fprintf(w, "  %s %s\n", articleStyle.Render(entry.ID), dimStyle.Render(entry.AddedAt.Format("2006-01-02 15:04")))
		fmt.Fprintf(w, "    %s %s  %s %d  %s %d  %s %d\n",
			dimStyle.Render("dataset:"), entry.Dataset,
			dimStyle.Render("laws:"), entry.Laws,
			dimStyle.Render("records:"), entry.Records,
			dimStyle.Render("truncated:"), entry.Truncated,
		)
	}
}

// FormatCorpusStats renders the aggregated totals box.
func FormatCorpusStats(w io.Writer, name string, stats corpus.Stats) {
	line := fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		dimStyle.Render("Entries:"), stats.Entries,
		dimStyle.Render("Laws:"), stats.Laws,
		dimStyle.Render("Records:"), stats.Records,
		dimStyle.Render("Truncated:"), stats.Truncated,
	)
	content := lawStyle.Render(name) + "\n" + line
	fmt.Fprintln(w, summaryBoxStyle.Render(content))
}

// clip shortens s to at most n runes for one-line display.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
