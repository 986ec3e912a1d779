// Package cmd implements the strack command line.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/sharetrack"
	"github.com/etnz/sharetrack/config"
	"github.com/etnz/sharetrack/date"
	"github.com/etnz/sharetrack/logger"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", config.DefaultPath, "Path to the YAML configuration file")

// Commands lists the subcommands in help order.
var Commands = []subcommands.Command{
	&runCmd{},
	&importCmd{},
	&holdingsCmd{},
	&taxCmd{},
	&statsCmd{},
	&topicCmd{},
}

// env is the configuration and logger shared by a command execution.
type env struct {
	cfg *config.Config
	log zerolog.Logger
}

// setup loads the configuration and tags the logger with a run id.
func setup() (*env, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logger()).With().Str("run", uuid.NewString()).Logger()
	return &env{cfg: cfg, log: log}, nil
}

// fail prints err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// printMarkdown renders md for the terminal, or prints it raw when it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// parseRange reads the -start and -end flags. An empty start or end falls
// back to the given default.
func parseRange(start, end string, def date.Range) (date.Range, error) {
	r := def
	var err error
	if start != "" {
		if r.From, err = date.Parse(start); err != nil {
			return r, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if end != "" {
		if r.To, err = date.Parse(end); err != nil {
			return r, fmt.Errorf("invalid end date: %w", err)
		}
	}
	if r.IsEmpty() {
		return r, fmt.Errorf("empty date range %s", r)
	}
	return r, nil
}

// readLedger decodes a JSONL ledger file into a journal.
func readLedger(path string) (*sharetrack.Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := sharetrack.DecodeTransactions(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	return sharetrack.NewJournal(txs...)
}

// ledgerRange is the span of j up to today, or today alone when j is empty.
func ledgerRange(j *sharetrack.Journal) date.Range {
	today := date.Today()
	span, ok := j.Span()
	if !ok {
		return date.NewRange(today, today)
	}
	return date.NewRange(span.From, today)
}

// writeFile creates path with its parent directories and fills it with write.
func writeFile(path string, write func(f *os.File) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
