// Package model defines the core data structures used throughout pwaudit.
//
// This package contains the following main types:
//   - Strength: The three-level strength label (Weak, Medium, Strong)
//   - AttackerProfile: A named guess-rate assumption used for crack-time projection
//   - AnalysisResult: The immutable scoring result for a single password
//   - Summary: Strength counts across a batch of results
//   - AuditRun, AuditRecord: The stored form of a run in the audit history
//
// The analyzer, pipeline, report and database packages all share these types.
// They serialize to JSON for reports and history output; the clear-text
// password is never serialized.
package model
