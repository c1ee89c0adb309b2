package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/banhbao/phapdien/pkg/cite"
	"github.com/banhbao/phapdien/pkg/corpus"
	"github.com/banhbao/phapdien/pkg/dataset"
	"github.com/banhbao/phapdien/pkg/index"
	"github.com/banhbao/phapdien/pkg/ingest"
	"github.com/banhbao/phapdien/pkg/logging"
	"github.com/banhbao/phapdien/pkg/pattern"
	"github.com/banhbao/phapdien/pkg/statute"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "phapdien",
		Short: "Vietnamese statute parser and record builder",
		Long: `Phapdien parses flat Vietnamese legal text into its chapter,
article, clause and point hierarchy, renders articles back into
self-describing text, and emits per-article records ready for a
retrieval index.

It works on plain text files and on dataset CSVs of consolidated law
texts.`,
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(conventionsCmd())
	rootCmd.AddCommand(corpusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a statute text file into its hierarchy",
		Long: `Parse a flat statute text file into chapters, articles, clauses
and points.

The default output is a styled outline; --json prints the full tree.

Example:
  phapdien parse --source luat.txt --law "Luật Giao dịch điện tử"
  phapdien parse --source luat.txt --json
  phapdien parse --source luat.txt --convention my-grammar --conventions-dir ./grammars`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			law, _ := cmd.Flags().GetString("law")
			asJSON, _ := cmd.Flags().GetBool("json")
			conventionName, _ := cmd.Flags().GetString("convention")
			conventionsDir, _ := cmd.Flags().GetString("conventions-dir")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}
			if law == "" {
				law = defaultLawName(source)
			}

			doc, err := parseSource(source, law, conventionName, conventionsDir)
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(doc)
			}

			FormatOutline(os.Stdout, doc)
			return nil
		},
	}

	cmd.Flags().StringP("source", "s", "", "Statute text file")
	cmd.Flags().StringP("law", "l", "", "Law identifier (defaults to the file name)")
	cmd.Flags().Bool("json", false, "Print the full document tree as JSON")
	cmd.Flags().String("convention", pattern.DefaultName, "Convention to parse with")
	cmd.Flags().String("conventions-dir", "", "Directory of convention YAML files")

	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one article as citation-ready text",
		Long: `Render a single article from a statute file. With --expand every
clause and point line carries its full citation, so each line stands
on its own. Post-processing cuts trailing boilerplate unless --raw is
given.

Example:
  phapdien render --source luat.txt --article 5
  phapdien render --source luat.txt --ref "Khoản 2 Điều 5" --expand
  phapdien render --source luat.txt --article 2 --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			articleNumber, _ := cmd.Flags().GetString("article")
			refStr, _ := cmd.Flags().GetString("ref")
			expand, _ := cmd.Flags().GetBool("expand")
			raw, _ := cmd.Flags().GetBool("raw")
			conventionName, _ := cmd.Flags().GetString("convention")
			conventionsDir, _ := cmd.Flags().GetString("conventions-dir")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}

			var ref *cite.Ref
			switch {
			case refStr != "":
				parsed, err := cite.Parse(refStr)
				if err != nil {
					return err
				}
				ref = parsed
			case articleNumber != "":
				ref = &cite.Ref{Article: articleNumber}
			default:
				return fmt.Errorf("--article or --ref flag is required")
			}

			doc, err := parseSource(source, defaultLawName(source), conventionName, conventionsDir)
			if err != nil {
				return err
			}

			var article *statute.Article
			for _, candidate := range doc.AllArticles() {
				if ref.Match(candidate) {
					article = candidate
					break
				}
			}
			if article == nil {
				return fmt.Errorf("article %s not found in %s", ref.Article, source)
			}

			text := article.Render(expand)
			if !raw {
				text = statute.StripBoilerplate(text)
			}
			fmt.Print(text)
			return nil
		},
	}

	cmd.Flags().StringP("source", "s", "", "Statute text file")
	cmd.Flags().StringP("article", "a", "", "Article number to render")
	cmd.Flags().StringP("ref", "r", "", `Citation reference (e.g. "Khoản 2 Điều 5")`)
	cmd.Flags().Bool("expand", false, "Expand clause and point lines into full citations")
	cmd.Flags().Bool("raw", false, "Skip boilerplate post-processing")
	cmd.Flags().String("convention", pattern.DefaultName, "Convention to parse with")
	cmd.Flags().String("conventions-dir", "", "Directory of convention YAML files")

	return cmd
}

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Parse a dataset CSV and emit retrieval records",
		Long: `Load a dataset CSV of law texts, keep only the currently effective
consolidated versions, parse each kept law, and write per-article
records as JSON lines.

The dataset needs "subject" and "text" columns. Gzip-compressed files
are read transparently. Records go to a flat file (--output) or into
a managed corpus directory (--corpus).

Example:
  phapdien ingest --dataset laws.csv --output records.jsonl
  phapdien ingest --dataset laws.csv.gz --corpus ./corpus --workers 8
  phapdien ingest --dataset laws.csv --output records.jsonl --expand --verbose
  phapdien ingest --dataset laws.csv --output records.jsonl --convention my-grammar --conventions-dir ./grammars`,
		RunE: func(cmd *cobra.Command, args []string) error {
			datasetPath, _ := cmd.Flags().GetString("dataset")
			output, _ := cmd.Flags().GetString("output")
			corpusDir, _ := cmd.Flags().GetString("corpus")
			workers, _ := cmd.Flags().GetInt("workers")
			expand, _ := cmd.Flags().GetBool("expand")
			verbose, _ := cmd.Flags().GetBool("verbose")
			conventionName, _ := cmd.Flags().GetString("convention")
			conventionsDir, _ := cmd.Flags().GetString("conventions-dir")

			if datasetPath == "" {
				return fmt.Errorf("--dataset flag is required")
			}
			if output == "" && corpusDir == "" {
				return fmt.Errorf("--output or --corpus flag is required")
			}
			if output != "" && corpusDir != "" {
				return fmt.Errorf("--output and --corpus are mutually exclusive")
			}

			logger := logging.Nop()
			if verbose {
				var err error
				logger, err = logging.New(true)
				if err != nil {
					return err
				}
				defer logger.Sync()
			}

			parser, err := conventionParser(conventionName, conventionsDir)
			if err != nil {
				return err
			}

			startTime := time.Now()
			fmt.Printf("Ingesting dataset from: %s\n", datasetPath)

			fmt.Print("  1. Loading dataset... ")
			laws, loadReport, err := dataset.LoadFile(datasetPath)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
			fmt.Printf("done (%d rows, %d kept, %d filtered)\n",
				loadReport.Rows, loadReport.Kept, loadReport.FilteredOut)

			opts := []ingest.Option{
				ingest.WithParser(parser),
				ingest.WithExpandCitations(expand),
				ingest.WithLogger(logger),
			}
			if workers > 0 {
				opts = append(opts, ingest.WithWorkers(workers))
			}
			pipeline := ingest.New(opts...)
			ctx := cmd.Context()

			var report *ingest.Report
			if corpusDir != "" {
				fmt.Print("  2. Parsing and building records... ")
				sink := index.NewMemorySink()
				report, err = pipeline.Run(ctx, laws, sink)
				if err != nil {
					return err
				}
				fmt.Printf("done (%d articles, %d records)\n", report.Articles, report.Records)

				fmt.Print("  3. Adding to corpus... ")
				c, err := corpus.Open(corpusDir)
				if err != nil {
					return err
				}
				entry, err := c.Add(ctx, corpus.AddMeta{
					Dataset:   filepath.Base(datasetPath),
					Laws:      report.Laws,
					Truncated: report.Truncated,
				}, sink.Records())
				if err != nil {
					return err
				}
				fmt.Printf("done (entry %s)\n", entry.ID)
			} else {
				fmt.Print("  2. Parsing and writing records... ")
				sink, err := index.NewJSONLSink(output)
				if err != nil {
					return err
				}
				report, err = pipeline.Run(ctx, laws, sink)
				if err != nil {
					sink.Close()
					return err
				}
				if err := sink.Close(); err != nil {
					return fmt.Errorf("failed to close output: %w", err)
				}
				fmt.Printf("done (%d articles, %d records)\n", report.Articles, report.Records)
			}

			fmt.Printf("\nIngest complete in %v\n\n", time.Since(startTime))
			FormatIngestSummary(os.Stdout, loadReport, report)
			return nil
		},
	}

	cmd.Flags().StringP("dataset", "d", "", "Dataset CSV file (optionally gzip-compressed)")
	cmd.Flags().StringP("output", "o", "", "Records JSONL output path")
	cmd.Flags().String("corpus", "", "Corpus directory to add the records to")
	cmd.Flags().IntP("workers", "w", 0, "Concurrent parse workers (0 uses all CPUs)")
	cmd.Flags().Bool("expand", false, "Expand clause and point lines into full citations")
	cmd.Flags().BoolP("verbose", "v", false, "Log per-law parse details")
	cmd.Flags().String("convention", pattern.DefaultName, "Convention to parse with")
	cmd.Flags().String("conventions-dir", "", "Directory of convention YAML files")

	return cmd
}

func conventionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conventions",
		Short: "List registered parsing conventions",
		Long: `List the built-in parsing convention and any loaded from a
directory of YAML files.

Example:
  phapdien conventions
  phapdien conventions --conventions-dir ./grammars`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("conventions-dir")

			registry := pattern.NewRegistry()
			if dir != "" {
				if err := registry.LoadDirectory(dir); err != nil {
					return fmt.Errorf("failed to load conventions: %w", err)
				}
			}

			FormatConventions(os.Stdout, registry.List())
			return nil
		},
	}

	cmd.Flags().String("conventions-dir", "", "Directory of convention YAML files")

	return cmd
}

func corpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect a corpus directory",
	}

	cmd.AddCommand(corpusListCmd())
	cmd.AddCommand(corpusStatsCmd())

	return cmd
}

func corpusListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List record sets in a corpus, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("corpus")
			if dir == "" {
				return fmt.Errorf("--corpus flag is required")
			}

			c, err := openExistingCorpus(dir)
			if err != nil {
				return err
			}

			FormatCorpusEntries(os.Stdout, c.Name(), c.List())
			return nil
		},
	}

	cmd.Flags().StringP("corpus", "c", "", "Corpus directory")

	return cmd
}

func corpusStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated corpus totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("corpus")
			if dir == "" {
				return fmt.Errorf("--corpus flag is required")
			}

			c, err := openExistingCorpus(dir)
			if err != nil {
				return err
			}

			FormatCorpusStats(os.Stdout, c.Name(), c.Stats())
			return nil
		},
	}

	cmd.Flags().StringP("corpus", "c", "", "Corpus directory")

	return cmd
}

// defaultLawName derives a law identifier from the source file name,
// dropping the extension.
func defaultLawName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// conventionParser compiles a parser from the named convention,
// consulting conventionsDir for additional YAML conventions when set.
func conventionParser(conventionName, conventionsDir string) (*statute.Parser, error) {
	registry := pattern.NewRegistry()
	if conventionsDir != "" {
		if err := registry.LoadDirectory(conventionsDir); err != nil {
			return nil, fmt.Errorf("failed to load conventions: %w", err)
		}
	}

	conv, ok := registry.Get(conventionName)
	if !ok {
		return nil, fmt.Errorf("unknown convention: %s", conventionName)
	}
	return conv.Parser()
}

// parseSource parses the file at source with the named convention.
func parseSource(source, law, conventionName, conventionsDir string) (*statute.Document, error) {
	parser, err := conventionParser(conventionName, conventionsDir)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer file.Close()

	doc, err := parser.Parse(law, file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// openExistingCorpus refuses to create a corpus as a side effect of an
// inspection command.
func openExistingCorpus(dir string) (*corpus.Corpus, error) {
	if !corpus.Exists(dir) {
		return nil, fmt.Errorf("no corpus found at %s", dir)
	}
	return corpus.Open(dir)
}
