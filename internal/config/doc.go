// Package config provides the options of an audit run: password inputs,
// wordlists, scoring concurrency, report format and audit history settings.
// Values come from CLI flags and an optional YAML file (.pwaudit).
package config
