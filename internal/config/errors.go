package config

import "errors"

// Configuration validation errors returned by Config.Validate and Config.Merge.
var (
	// ErrConflictingInputs is returned when both --password and --input-file are given.
	ErrConflictingInputs = errors.New("conflicting inputs: --password and --input-file cannot be used together")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoDBDir is returned when history saving is requested without a database directory.
	ErrNoDBDir = errors.New("history saving requires a database directory")

	// ErrTeeWithoutOutput is returned when --tee is given without --output.
	ErrTeeWithoutOutput = errors.New("--tee requires --output")

	// ErrInvalidFormat is returned when the configuration file names an unknown report format.
	ErrInvalidFormat = errors.New("invalid format: must be text, json or markdown")
)
