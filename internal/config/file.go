package config

// File is the structure of the .pwaudit configuration file.
// Pointer fields distinguish "not set" from an explicit false.
type File struct {
	// Wordlists replaces the default common-password list.
	Wordlists []string `yaml:"wordlists,omitempty"`

	// Concurrency is the number of passwords scored at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Format is the report format: text, json or markdown.
	Format string `yaml:"format,omitempty"`

	// SaveHistory stores each run in the audit database.
	SaveHistory *bool `yaml:"save_history,omitempty"`

	// DBDir overrides the audit database directory.
	DBDir string `yaml:"db_dir,omitempty"`

	// Advisory attaches a zxcvbn score to every result.
	Advisory *bool `yaml:"advisory,omitempty"`

	// NoColor disables coloured terminal output.
	NoColor *bool `yaml:"no_color,omitempty"`

	// FailOnWeak makes the audit exit non-zero when any password is Weak.
	FailOnWeak *bool `yaml:"fail_on_weak,omitempty"`
}
