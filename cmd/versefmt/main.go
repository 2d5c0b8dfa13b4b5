// Command versefmt standardizes scripture citations in text and DOCX
// documents, and serves a live preview of the rewriter.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/CedarVerse/core/lexicon"
	"github.com/FocuswithJustin/CedarVerse/core/standardize"
	"github.com/FocuswithJustin/CedarVerse/internal/batch"
	"github.com/FocuswithJustin/CedarVerse/internal/logging"
	"github.com/FocuswithJustin/CedarVerse/internal/report"
	"github.com/FocuswithJustin/CedarVerse/internal/server"
	"github.com/FocuswithJustin/CedarVerse/internal/validation"
)

const version = "1.0.0"

const defaultReportDB = "versefmt_reports.db"

// CLI defines the command-line interface for versefmt.
var CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format (text, json)"`

	Text    TextCmd    `cmd:"" help:"Standardize citations in text from an argument or stdin"`
	File    FileCmd    `cmd:"" help:"Standardize citations in a single DOCX document"`
	Dir     DirCmd     `cmd:"" help:"Standardize every DOCX document in a directory"`
	Books   BooksCmd   `cmd:"" help:"List the canonical book names"`
	Reports ReportsCmd `cmd:"" help:"Inspect saved batch reports"`
	Serve   ServeCmd   `cmd:"" help:"Start the live-preview server"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func configureLogging() {
	level := map[string]logging.Level{
		"debug": logging.LevelDebug,
		"info":  logging.LevelInfo,
		"warn":  logging.LevelWarn,
		"error": logging.LevelError,
	}[CLI.LogLevel]
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

// TextCmd rewrites citations in plain text.
type TextCmd struct {
	Text []string `arg:"" optional:"" help:"Text to standardize (reads stdin when omitted)"`
}

func (c *TextCmd) Run() error {
	var input string
	if len(c.Text) > 0 {
		input = strings.Join(c.Text, " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(data)
	}

	std := standardize.New(standardize.WithDiagnostics(func(d standardize.Diagnostic) {
		logging.CitationDiagnostic(d.Span, d.Message)
	}))
	fmt.Println(standardize.PostProcess(std.Text(input)))
	return nil
}

// BackupFlags are shared by the file and dir commands.
type BackupFlags struct {
	NoBackup bool   `name:"no-backup" help:"Modify documents without writing backups"`
	Compress bool   `name:"compress" help:"Store backups xz-compressed"`
	ReportDB string `name:"report-db" help:"Save results to this SQLite report database"`
}

func (f BackupFlags) options() batch.Options {
	return batch.Options{Backup: !f.NoBackup, Compress: f.Compress}
}

func saveReports(dbPath string, results []batch.Result) error {
	if dbPath == "" {
		return nil
	}
	store, err := report.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveAll(results)
}

func printResult(res batch.Result) {
	status := "ok"
	if !res.OK {
		status = "FAILED: " + res.Err
	}
	fmt.Printf("%s  runs changed: %d/%d  %s\n", res.Path, res.RunsChanged, res.RunsTotal, status)
	if res.BackupPath != "" {
		fmt.Printf("  backup: %s\n", res.BackupPath)
	}
	for _, d := range res.Diagnostics {
		fmt.Printf("  left as written: %q (%s)\n", d.Span, d.Message)
	}
}

// FileCmd rewrites one document in place.
type FileCmd struct {
	BackupFlags
	Path string `arg:"" help:"DOCX document to standardize" type:"existingfile"`
}

func (c *FileCmd) Run() error {
	if err := validation.ValidatePath(c.Path); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	res := batch.ProcessDocument(batch.NewJob(c.Path), c.options())
	printResult(res)
	if err := saveReports(c.ReportDB, []batch.Result{res}); err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("processing failed: %s", res.Err)
	}
	return nil
}

// DirCmd rewrites every document under a directory.
type DirCmd struct {
	BackupFlags
	Workers int    `name:"workers" short:"w" default:"0" help:"Parallel workers (0 = one per CPU)"`
	Path    string `arg:"" help:"Directory of DOCX documents" type:"existingdir"`
}

func (c *DirCmd) Run() error {
	if err := validation.ValidatePath(c.Path); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	opts := c.options()
	opts.Workers = c.Workers
	results, err := batch.ProcessDir(c.Path, opts)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no documents found")
		return nil
	}

	failed := 0
	for _, res := range results {
		printResult(res)
		if !res.OK {
			failed++
		}
	}
	if err := saveReports(c.ReportDB, results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// BooksCmd lists every canonical name the rewriter can produce.
type BooksCmd struct{}

func (c *BooksCmd) Run() error {
	for _, name := range lexicon.Books() {
		fmt.Println(name)
	}
	return nil
}

// ReportsCmd inspects a report database written by file or dir runs.
type ReportsCmd struct {
	List    ReportsListCmd    `cmd:"" help:"List saved results, newest first"`
	Summary ReportsSummaryCmd `cmd:"" help:"Aggregate totals across every saved result"`
}

type ReportsListCmd struct {
	DB    string `name:"db" default:"${default_report_db}" help:"Report database path" type:"existingfile"`
	Limit int    `name:"limit" short:"n" default:"0" help:"Show at most this many results (0 = all)"`
}

func (c *ReportsListCmd) Run() error {
	store, err := report.Open(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(c.Limit)
	if err != nil {
		return err
	}
	for _, rec := range records {
		status := "ok"
		if !rec.OK {
			status = "FAILED: " + rec.Err
		}
		fmt.Printf("%s  %s  runs changed: %d/%d  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Path,
			rec.RunsChanged, rec.RunsTotal, status)
	}
	return nil
}

type ReportsSummaryCmd struct {
	DB string `name:"db" default:"${default_report_db}" help:"Report database path" type:"existingfile"`
}

func (c *ReportsSummaryCmd) Run() error {
	store, err := report.Open(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	sum, err := store.Summarize()
	if err != nil {
		return err
	}
	fmt.Printf("documents:    %d\n", sum.Documents)
	fmt.Printf("succeeded:    %d\n", sum.Succeeded)
	fmt.Printf("failed:       %d\n", sum.Failed)
	fmt.Printf("runs changed: %d\n", sum.RunsChanged)
	fmt.Printf("diagnostics:  %d\n", sum.Diagnostics)
	return nil
}

// ServeCmd starts the preview server.
type ServeCmd struct {
	Host string `name:"host" default:"localhost" help:"Listen host"`
	Port int    `name:"port" short:"p" default:"8174" help:"Listen port"`
}

func (c *ServeCmd) Run() error {
	return server.New(server.Config{Host: c.Host, Port: c.Port}).Start()
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("versefmt version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("versefmt"),
		kong.Description("CedarVerse - scripture citation standardizer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"default_report_db": defaultReportDB},
	)
	configureLogging()
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
