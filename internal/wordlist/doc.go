// Package wordlist loads lists of known-weak passwords.
//
// A wordlist is a plain text file with one password per line. Entries are
// trimmed and lower-cased on load so that lookups can be done with the
// lower-cased form of a candidate password.
//
// A missing wordlist is not an error: it yields an empty Set so that the
// audit still runs without dictionary checks. Any other read failure is
// returned to the caller.
package wordlist
