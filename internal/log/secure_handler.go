package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces any attribute value that may carry a password.
const MaskValue = "***REDACTED***"

// redactedKeys are attribute keys whose values are always replaced.
// Short names such as "pw" are matched exactly because as substrings they
// would hit unrelated keys.
var redactedKeys = map[string]bool{
	"pw":        true,
	"pwd":       true,
	"pass":      true,
	"input":     true,
	"line":      true,
	"raw":       true,
	"clear":     true,
	"cleartext": true,
	"plaintext": true,
	"salt":      true,
}

// redactedKeywords redact any key that contains them.
var redactedKeywords = []string{
	"password",
	"passwd",
	"passphrase",
	"secret",
	"candidate",
	"credential",
	"plaintext",
}

// hashPatterns match encoded password hashes. They are redacted regardless
// of the key they are logged under.
var hashPatterns = []*regexp.Regexp{
	// argon2 PHC strings
	regexp.MustCompile(`^\$argon2(id|i|d)\$`),
	// bcrypt
	regexp.MustCompile(`^\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}$`),
	// crypt(3) SHA-256 / SHA-512
	regexp.MustCompile(`^\$[56]\$(rounds=\d+\$)?[./A-Za-z0-9]+\$[./A-Za-z0-9]+$`),
	// scrypt PHC strings
	regexp.MustCompile(`^\$scrypt\$`),
}

// SecureHandler wraps an slog.Handler and redacts attributes that could
// leak a password before the record reaches the wrapped handler.
//
// Redaction is key based: a password has no recognisable shape, so callers
// must log clear text only under a key this handler knows about (or not at
// all). Encoded hashes are additionally caught by value.
type SecureHandler struct {
	// handler receives the redacted records.
	handler slog.Handler

	// extraKeys are additional exact keys registered with WithRedactedKeys.
	extraKeys map[string]bool
}

// HandlerOption configures a SecureHandler.
type HandlerOption func(*SecureHandler)

// WithRedactedKeys adds exact attribute keys (case-insensitive) to redact.
func WithRedactedKeys(keys ...string) HandlerOption {
	return func(h *SecureHandler) {
		for _, k := range keys {
			h.extraKeys[strings.ToLower(k)] = true
		}
	}
}

// NewSecureHandler creates a SecureHandler around handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSecureHandler(handler slog.Handler, opts ...HandlerOption) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &SecureHandler{
		handler:   handler,
		extraKeys: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled delegates to the wrapped handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and forwards it.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a handler whose preset attributes are already redacted.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.redactAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(out), extraKeys: h.extraKeys}
}

// WithGroup returns a handler that nests attributes under name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name), extraKeys: h.extraKeys}
}

func (h *SecureHandler) redactAttr(a slog.Attr) slog.Attr {
	// LogValuer values are resolved first so a type cannot smuggle a
	// password past the key check.
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = h.redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if h.isRedactedKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isHashValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

func (h *SecureHandler) isRedactedKey(key string) bool {
	k := strings.ToLower(key)
	if redactedKeys[k] || h.extraKeys[k] {
		return true
	}
	return containsRedactedKeyword(k)
}

// containsRedactedKeyword reports whether a lower-cased key contains a
// password-related keyword. "masked" keys are allowed through since they
// only ever hold the masked display form.
func containsRedactedKeyword(key string) bool {
	if strings.HasPrefix(key, "masked") {
		return false
	}
	for _, kw := range redactedKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

func isHashValue(value string) bool {
	for _, p := range hashPatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

// NewSecureLogger returns a text logger writing to w through a SecureHandler.
// verbose lowers the level from Warn to Debug.
func NewSecureLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose)), opts...))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), opts...))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
