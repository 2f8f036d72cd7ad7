// Command structura converts a PDF document into structured JSON: pages
// of typed content blocks (paragraph, table, chart) tagged with their
// section and subsection context.
//
// Usage:
//
//	structura [flags] input.pdf output.json
//
// Flags:
//
//	-ocr                 enable OCR descriptions for charts (requires an
//	                     ocr-tagged build and a tesseract installation)
//	-image-dir string    directory for extracted chart images
//	-document-context    carry section context across page boundaries
//	-password string     password for encrypted PDFs
//	-stats               print summary statistics after extraction
//	-verbose             debug-level logging with per-page progress
//	-log-json            log as JSON instead of text
//
// Exit codes: 0 on success, 1 on a fatal extraction error, 2 on usage
// errors. Per-page and per-feature failures degrade into warnings and do
// not abort the run.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tsawler/structura"
	"github.com/tsawler/structura/model"
)

type options struct {
	input           string
	output          string
	ocr             bool
	imageDir        string
	documentContext bool
	password        string
	stats           bool
	verbose         bool
	logJSON         bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("structura", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&opts.ocr, "ocr", false, "enable OCR descriptions for charts")
	fs.StringVar(&opts.imageDir, "image-dir", "", "directory for extracted chart images")
	fs.BoolVar(&opts.documentContext, "document-context", false, "carry section context across page boundaries")
	fs.StringVar(&opts.password, "password", "", "password for encrypted PDFs")
	fs.BoolVar(&opts.stats, "stats", false, "print summary statistics after extraction")
	fs.BoolVar(&opts.verbose, "verbose", false, "debug-level logging")
	fs.BoolVar(&opts.logJSON, "log-json", false, "log as JSON instead of text")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: structura [flags] input.pdf output.json")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return opts, fmt.Errorf("expected input and output paths, got %d arguments", fs.NArg())
	}

	opts.input = fs.Arg(0)
	opts.output = fs.Arg(1)
	return opts, nil
}

func newLogger(opts options) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.logJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	logger := newLogger(opts)
	if err := run(opts, logger); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	ex := structura.Open(opts.input).WithLogger(logger)
	if opts.password != "" {
		ex = ex.Password(opts.password)
	}
	if opts.ocr {
		ex = ex.EnableOCR()
	}
	if opts.imageDir != "" {
		ex = ex.ImageDir(opts.imageDir)
	}
	if opts.documentContext {
		ex = ex.DocumentContext()
	}
	if opts.verbose {
		ex = ex.OnPage(func(page, total int) {
			logger.Debug("processing", "page", page, "total", total)
		})
	}

	doc, warnings, err := ex.Extract()
	if err != nil {
		return err
	}
	// Individual warnings were already logged as they occurred.
	if len(warnings) > 0 {
		logger.Info("extraction completed with warnings", "count", len(warnings))
	}

	data, err := doc.MarshalIndentJSON()
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("wrote structured document", "path", opts.output, "pages", doc.PageCount())

	if opts.stats {
		printStats(os.Stdout, doc.Stats())
	}
	return nil
}

func printStats(w io.Writer, stats model.Stats) {
	fmt.Fprintf(w, "Pages:       %d\n", stats.Pages)
	fmt.Fprintf(w, "Blocks:      %d\n", stats.Blocks)
	fmt.Fprintf(w, "  Paragraphs: %d\n", stats.Paragraphs)
	fmt.Fprintf(w, "  Tables:     %d\n", stats.Tables)
	fmt.Fprintf(w, "  Charts:     %d\n", stats.Charts)
	fmt.Fprintf(w, "Sections:    %s\n", joinOrNone(stats.Sections))
	fmt.Fprintf(w, "Subsections: %s\n", joinOrNone(stats.Subsections))
}

func joinOrNone(labels []string) string {
	if len(labels) == 0 {
		return "(none)"
	}
	return strings.Join(labels, ", ")
}
