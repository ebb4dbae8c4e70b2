package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/pwaudit/internal/analyzer"
	"github.com/nao1215/pwaudit/internal/config"
	"github.com/nao1215/pwaudit/internal/database"
	"github.com/nao1215/pwaudit/internal/input"
	"github.com/nao1215/pwaudit/internal/log"
	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/pipeline"
	"github.com/nao1215/pwaudit/internal/report"
	"github.com/nao1215/pwaudit/internal/wordlist"
	"github.com/spf13/cobra"
)

// ErrWeakPasswords is returned with --fail-on-weak when any password is Weak.
var ErrWeakPasswords = errors.New("weak passwords found")

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Estimate the strength of one or more passwords",
		Long: `Audit scores passwords and prints a report with a strength label,
recommendations and projected crack times.

Passwords are read from --password, from --input-file (one per line) or,
when neither is given, from an interactive prompt with hidden input.

Examples:
  # Audit a single password
  pwaudit audit -p 'Tr0ub4dor&3'

  # Audit a file and write a Markdown report
  pwaudit audit -i passwords.txt -m -o report.md

  # Prompt for a password and keep the result in the audit history
  pwaudit audit --save

  # Use additional common-password lists
  pwaudit audit -i passwords.txt -w rockyou-top10k.txt -w company.txt

  # Fail a CI job when any password is weak
  pwaudit audit -i passwords.txt --fail-on-weak`,
		Args: cobra.NoArgs,
		RunE: runAuditCmd,
	}

	cmd.Flags().StringP("password", "p", "",
		"Password to audit (visible in shell history; prefer the prompt)")
	cmd.Flags().StringP("input-file", "i", "",
		"File with one password per line")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")
	cmd.Flags().BoolP("json", "j", false,
		"Output report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output report in Markdown format")
	cmd.Flags().StringSliceP("wordlist", "w", []string{config.DefaultWordlist},
		"Common-password list (repeatable)")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of passwords scored in parallel")
	cmd.Flags().Bool("save", false,
		"Store fingerprints and results in the audit history")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the audit history database")
	cmd.Flags().Bool("advisory", false,
		"Attach a zxcvbn score as a second opinion")
	cmd.Flags().Bool("no-color", false,
		"Disable coloured output")
	cmd.Flags().Bool("fail-on-weak", false,
		"Exit with an error when any password is Weak")
	cmd.Flags().Bool("tee", false,
		"Also print the text report to stdout when writing to --output")
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: .pwaudit, XDG config dir, ~/.pwaudit)")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAudit(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// commandContext returns the command's context, or a background context
// when the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getPersistentBool(cmd, "verbose")
}

// getPersistentBool retrieves a root persistent flag. It is false when the
// command runs without the root, as in tests.
func getPersistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// newLogger creates the redacting logger for cfg.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.LogJSON {
		return log.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return log.NewSecureLogger(w, cfg.Verbose)
}

// buildConfig creates a Config from cobra command flags and merges the
// configuration file, if one is found. Flags set explicitly win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Password, err = cmd.Flags().GetString("password")
	if err != nil {
		return nil, err
	}

	cfg.InputFile, err = cmd.Flags().GetString("input-file")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.Wordlists, err = cmd.Flags().GetStringSlice("wordlist")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.SaveHistory, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.Advisory, err = cmd.Flags().GetBool("advisory")
	if err != nil {
		return nil, err
	}

	cfg.NoColor, err = cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}

	cfg.FailOnWeak, err = cmd.Flags().GetBool("fail-on-weak")
	if err != nil {
		return nil, err
	}

	cfg.Tee, err = cmd.Flags().GetBool("tee")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.LogJSON = getPersistentBool(cmd, "log-json")

	if err := mergeConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfigFile loads the configuration file and applies it to cfg.
// A missing file is only an error when its path was given explicitly.
func mergeConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("config file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfg.Merge(file, cmd.Flags().Changed); err != nil {
		return fmt.Errorf("configuration error in %s: %w", path, err)
	}
	return nil
}

// selectSource picks where passwords are read from.
func selectSource(cfg *config.Config, in io.Reader, prompt io.Writer) input.Source {
	switch {
	case cfg.Password != "":
		return input.Single(cfg.Password)
	case cfg.InputFile != "":
		return input.FileSource(cfg.InputFile)
	default:
		return input.NewPromptSource(in, prompt)
	}
}

// runAudit scores every password from the configured source, writes the
// report and optionally saves the run to the audit history.
func runAudit(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer, logger *slog.Logger) error {
	passwords, err := selectSource(cfg, in, errOut).Passwords()
	if err != nil {
		return err
	}
	if len(passwords) == 0 {
		return errors.New("no passwords to audit")
	}

	wl, err := wordlist.LoadAll(cfg.Wordlists...)
	if err != nil {
		logger.Warn("some wordlists could not be read; continuing with the rest",
			"error", err)
	}
	if wl.Len() == 0 {
		logger.Warn("no common-password entries loaded; wordlist checks are disabled",
			"wordlists", cfg.Wordlists)
	}

	a := analyzer.New(wl, analyzer.WithAdvisory(cfg.Advisory))
	logger.Debug("starting audit",
		"count", len(passwords),
		"wordlist_entries", a.WordlistSize(),
		"concurrency", cfg.Concurrency)

	bp := pipeline.NewBatchProcessor(a,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	results, err := bp.Process(ctx, passwords)
	if err != nil {
		return fmt.Errorf("audit interrupted: %w", err)
	}

	if err := outputReport(cfg, results, out); err != nil {
		return err
	}
	if cfg.ReportFile != "" {
		fmt.Fprintf(errOut, "Report saved to %s\n", cfg.ReportFile)
	}

	if cfg.SaveHistory {
		if err := saveHistory(ctx, cfg, results, errOut); err != nil {
			return err
		}
	}

	if summary := model.NewSummary(results); cfg.FailOnWeak && summary.HasWeak() {
		return fmt.Errorf("%w: %d of %d", ErrWeakPasswords, summary.Weak, summary.Total)
	}
	return nil
}

// outputReport writes results to the report file or to out. With Tee the
// text report also goes to out.
func outputReport(cfg *config.Config, results []model.AnalysisResult, out io.Writer) (err error) {
	output := out
	toFile := cfg.ReportFile != ""
	if toFile {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports show masked passwords but remain owner-only.
		f, openErr := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if openErr != nil {
			return fmt.Errorf("failed to create output file: %w", openErr)
		}
		defer closeOutput(f, &err)
		output = f
	}

	writer := newWriter(cfg, output, toFile)
	if toFile && cfg.Tee {
		writer = report.NewMultiWriter(writer, newTextWriter(cfg, out))
	}

	_, err = writer.Write(results)
	return err
}

// closeOutput closes c and stores the close error in errp unless an
// earlier error is already there.
func closeOutput(c io.Closer, errp *error) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("failed to close output file: %w", cerr)
	}
}

// newWriter returns the report writer for the configured format.
func newWriter(cfg *config.Config, output io.Writer, toFile bool) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case toFile:
		return report.NewSimpleWriter(output,
			report.WithColorMode(report.ColorNever),
			report.WithVerbose(cfg.Verbose),
		)
	default:
		return newTextWriter(cfg, output)
	}
}

// newTextWriter returns the terminal text writer.
func newTextWriter(cfg *config.Config, output io.Writer) report.Writer {
	mode := report.ColorAuto
	if cfg.NoColor {
		mode = report.ColorNever
	}
	return report.NewSimpleWriter(output,
		report.WithColorMode(mode),
		report.WithVerbose(cfg.Verbose),
	)
}

// saveHistory stores the run and warns about passwords seen in earlier runs.
func saveHistory(ctx context.Context, cfg *config.Config, results []model.AnalysisResult, errOut io.Writer) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open audit history: %w", err)
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, results)
	if err != nil {
		return fmt.Errorf("failed to save audit run: %w", err)
	}
	fmt.Fprintf(errOut, "Saved run %s to %s\n", runID, db.Path())

	run, err := db.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to read back audit run: %w", err)
	}
	for i, rec := range run.Records {
		if rec.SeenBefore > 0 {
			fmt.Fprintf(errOut, "warning: entry %d (%s) was seen in %d earlier run(s)\n",
				i+1, rec.Masked, rec.SeenBefore)
		}
	}
	return nil
}
