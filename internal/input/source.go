package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInputNotFound is returned by FileSource when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ErrNoPassword is returned by PromptSource when the user entered nothing.
var ErrNoPassword = errors.New("no password entered")

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

// Source yields passwords to audit.
type Source interface {
	Passwords() ([]string, error)
}

// singleSource is a Source holding one password.
type singleSource struct {
	password string
}

// Single returns a Source that yields exactly password, unmodified.
func Single(password string) Source {
	return singleSource{password: password}
}

// Passwords implements Source.
func (s singleSource) Passwords() ([]string, error) {
	return []string{s.password}, nil
}

// fileSource reads one password per line from a file.
type fileSource struct {
	path string
}

// FileSource returns a Source that reads one password per line from path.
func FileSource(path string) Source {
	return fileSource{path: path}
}

// Passwords implements Source. A missing file yields ErrInputNotFound.
func (s fileSource) Passwords() ([]string, error) {
	f, err := os.Open(s.path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	passwords, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", s.path, err)
	}
	return passwords, nil
}

// readerSource reads one password per line from an io.Reader.
type readerSource struct {
	r io.Reader
}

// ReaderSource returns a Source that reads one password per line from r.
func ReaderSource(r io.Reader) Source {
	return readerSource{r: r}
}

// Passwords implements Source.
func (s readerSource) Passwords() ([]string, error) {
	return readLines(s.r)
}

// readLines returns the trimmed, non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// PromptSource asks for a single password interactively.
type PromptSource struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

// DefaultPrompt is shown by PromptSource unless WithPrompt is given.
const DefaultPrompt = "Enter password to audit: "

// PromptOption configures a PromptSource.
type PromptOption func(*PromptSource)

// WithPrompt replaces the prompt text.
func WithPrompt(prompt string) PromptOption {
	return func(p *PromptSource) {
		p.prompt = prompt
	}
}

// NewPromptSource creates a PromptSource reading from in and writing the
// prompt to out. When in is a terminal the typed password is not echoed.
func NewPromptSource(in io.Reader, out io.Writer, opts ...PromptOption) *PromptSource {
	p := &PromptSource{
		in:     in,
		out:    out,
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Passwords implements Source. Leading and trailing whitespace is kept
// apart from the line terminator since it is part of what the user typed.
func (p *PromptSource) Passwords() ([]string, error) {
	if _, err := fmt.Fprint(p.out, p.prompt); err != nil {
		return nil, fmt.Errorf("failed to write prompt: %w", err)
	}

	password, err := p.read()
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrNoPassword
	}
	return []string{password}, nil
}

func (p *PromptSource) read() (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		b, err := term.ReadPassword(int(f.Fd())) //nolint:gosec // fd fits in int
		fmt.Fprintln(p.out)                      //nolint:errcheck // cosmetic newline after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
