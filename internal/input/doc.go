// Package input collects the passwords to audit.
//
// A Source yields passwords from one place: a single value given on the
// command line, a file with one password per line, any io.Reader, or an
// interactive prompt. File and reader sources trim surrounding whitespace
// and skip blank lines, matching the wordlist format.
package input
