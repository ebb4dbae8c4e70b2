package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pwaudit"

	// DefaultWordlist is the common-password list looked up relative to the
	// working directory. A missing file is treated as an empty list.
	DefaultWordlist = "wordlists/common_passwords.txt"

	// DefaultConcurrency is the number of passwords scored in parallel.
	DefaultConcurrency = 4
)

// Report formats accepted in the configuration file.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds every option of an audit run.
// It is populated from CLI flags, optionally merged with a .pwaudit file,
// and passed down explicitly rather than kept in global state.
type Config struct {
	// Password is a single password given on the command line.
	// Mutually exclusive with InputFile.
	Password string

	// InputFile is a file with one password per line.
	InputFile string

	// Wordlists are the common-password lists to check against.
	// Their entries are unioned.
	Wordlists []string

	// Concurrency is the number of passwords scored at once.
	Concurrency int

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// ConfigFilePath is an explicit configuration file path.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is where the report is written. Empty means stdout.
	ReportFile string

	// SaveHistory stores fingerprints and results of this run in the audit database.
	SaveHistory bool

	// DBDir is the directory holding the audit database.
	// Defaults to the XDG data directory (~/.local/share/pwaudit on Linux).
	DBDir string

	// Advisory attaches a zxcvbn score to every result.
	Advisory bool

	// NoColor disables coloured terminal output.
	NoColor bool

	// FailOnWeak makes the audit fail when any password is Weak.
	FailOnWeak bool

	// Tee also prints the text report to stdout when ReportFile is set.
	Tee bool

	// LogJSON switches log output from text to JSON.
	LogJSON bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Wordlists:   []string{DefaultWordlist},
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for pwaudit.
// On Linux: ~/.local/share/pwaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pwaudit.
// On Linux: ~/.config/pwaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Password != "" && c.InputFile != "" {
		return ErrConflictingInputs
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.SaveHistory && c.DBDir == "" {
		return ErrNoDBDir
	}

	if c.Tee && c.ReportFile == "" {
		return ErrTeeWithoutOutput
	}

	return nil
}

// Merge applies values from a configuration file to c. Fields whose flag
// was set explicitly on the command line keep their flag value; changed
// reports that for a flag name. A nil changed treats every flag as unset.
func (c *Config) Merge(f *File, changed func(flag string) bool) error {
	if f == nil {
		return nil
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if len(f.Wordlists) > 0 && !changed("wordlist") {
		c.Wordlists = append([]string(nil), f.Wordlists...)
	}
	if f.Concurrency != 0 && !changed("concurrency") {
		c.Concurrency = f.Concurrency
	}
	if f.Format != "" && !changed("json") && !changed("markdown") {
		switch f.Format {
		case FormatText:
			c.JSONReport, c.MarkdownReport = false, false
		case FormatJSON:
			c.JSONReport, c.MarkdownReport = true, false
		case FormatMarkdown:
			c.JSONReport, c.MarkdownReport = false, true
		default:
			return ErrInvalidFormat
		}
	}
	if f.SaveHistory != nil && !changed("save") {
		c.SaveHistory = *f.SaveHistory
	}
	if f.DBDir != "" && !changed("db-dir") {
		c.DBDir = f.DBDir
	}
	if f.Advisory != nil && !changed("advisory") {
		c.Advisory = *f.Advisory
	}
	if f.NoColor != nil && !changed("no-color") {
		c.NoColor = *f.NoColor
	}
	if f.FailOnWeak != nil && !changed("fail-on-weak") {
		c.FailOnWeak = *f.FailOnWeak
	}

	return nil
}
