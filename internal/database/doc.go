// Package database provides the SQLite audit history for pwaudit.
//
// AuditDB records each audit run with its strength summary and one row per
// scored password. Passwords are never written: a record keeps the masked
// display form and an argon2id fingerprint keyed with a random per-database
// salt, which is enough to tell that a password was seen in an earlier run
// and useless for recovering it without the database.
//
// SQLite is used through modernc.org/sqlite, which is CGO-free, in WAL mode
// with a single connection.
package database
