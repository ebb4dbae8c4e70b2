// Package log provides slog loggers that redact password material before it
// reaches any output.
//
// The scoring core never logs passwords, but the CLI reads them from flags,
// files and prompts. SecureHandler is the last line of defence: attributes
// whose key looks password-related (password, passphrase, candidate, pw, ...)
// are replaced with MaskValue, and encoded hashes (argon2, bcrypt, crypt(3))
// are replaced whatever their key. Keys starting with "masked" pass through
// because they hold the masked display form.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("scored", "masked", result.Masked(), "password", pw) // password is redacted
//	slog.SetDefault(logger)
package log
