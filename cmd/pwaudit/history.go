package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nao1215/pwaudit/internal/config"
	"github.com/nao1215/pwaudit/internal/database"
	"github.com/nao1215/pwaudit/internal/input"
	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved audit runs",
		Long: `History lists the runs saved with 'pwaudit audit --save'.

Only masked passwords and keyed fingerprints are stored, so the history can
show which entries were reused across runs but never the passwords themselves.

Examples:
  # List all saved runs
  pwaudit history

  # Show one run with its entries
  pwaudit history --run 3f1c2a9e-...

  # Delete a run
  pwaudit history --delete 3f1c2a9e-...

  # Check whether a password appears in any saved run (prompts for it)
  pwaudit history --check`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("run", "r", "", "Show the entries of this run")
	cmd.Flags().String("delete", "", "Delete this run from the history")
	cmd.Flags().Bool("check", false, "Prompt for a password and count the saved runs containing it")
	cmd.Flags().BoolP("json", "j", false, "Output history in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output history in Markdown format")
	cmd.Flags().Bool("no-color", false, "Disable coloured output")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the audit history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	runID, err := flags.GetString("run")
	if err != nil {
		return err
	}
	deleteID, err := flags.GetString("delete")
	if err != nil {
		return err
	}
	jsonOut, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	check, err := flags.GetBool("check")
	if err != nil {
		return err
	}

	if jsonOut && markdownOut {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}
	if runID != "" && deleteID != "" {
		return errors.New("--run and --delete cannot be used together")
	}
	if check && (runID != "" || deleteID != "") {
		return errors.New("--check cannot be combined with --run or --delete")
	}

	if check {
		return runHistoryCheck(cmd, dbDir)
	}

	out := cmd.OutOrStdout()
	var writer report.Writer
	switch {
	case jsonOut:
		writer = report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case markdownOut:
		writer = report.NewMarkdownWriter(out)
	default:
		mode := report.ColorAuto
		if noColor {
			mode = report.ColorNever
		}
		writer = report.NewSimpleWriter(out, report.WithColorMode(mode))
	}

	dbPath := filepath.Join(dbDir, database.FileName)
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		if runID != "" || deleteID != "" {
			return fmt.Errorf("%w: no audit history at %s", database.ErrRunNotFound, dbPath)
		}
		_, err := writer.WriteRuns(nil)
		return err
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open audit history: %w", err)
	}
	defer db.Close()

	ctx := commandContext(cmd)

	switch {
	case deleteID != "":
		if err := db.DeleteRun(ctx, deleteID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted run %s\n", deleteID)
		return nil
	case runID != "":
		run, err := db.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		_, err = writer.WriteRuns([]model.AuditRun{*run})
		return err
	default:
		runs, err := db.ListRuns(ctx)
		if err != nil {
			return err
		}
		_, err = writer.WriteRuns(runs)
		return err
	}
}

// runHistoryCheck reads one password from the prompt and prints how many
// saved runs contained it. Only its fingerprint is compared.
func runHistoryCheck(cmd *cobra.Command, dbDir string) error {
	passwords, err := input.NewPromptSource(cmd.InOrStdin(), cmd.ErrOrStderr(),
		input.WithPrompt("Enter password to check: ")).Passwords()
	if err != nil {
		return err
	}
	masked := model.MaskPassword(passwords[0])

	out := cmd.OutOrStdout()
	dbPath := filepath.Join(dbDir, database.FileName)
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "%s was seen in 0 saved run(s)\n", masked)
		return nil
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open audit history: %w", err)
	}
	defer db.Close()

	n, err := db.CountSeen(commandContext(cmd), db.Fingerprint(passwords[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s was seen in %d saved run(s)\n", masked, n)
	return nil
}
