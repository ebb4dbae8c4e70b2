package model

import "time"

// AuditRecord is the stored form of one scored password. It carries the
// masked display form and a keyed fingerprint, never the password itself.
type AuditRecord struct {
	// Fingerprint identifies the password across runs without revealing it.
	Fingerprint string `json:"fingerprint"`

	// Masked is the masked display form, e.g. "pa***rd".
	Masked string `json:"masked"`

	Length      int      `json:"length"`
	EntropyBits float64  `json:"entropy_bits"`
	Strength    Strength `json:"strength"`
	Flags       Flags    `json:"flags"`

	// SeenBefore is the number of earlier runs that contained the same
	// fingerprint. It is filled in when the record is read back.
	SeenBefore int `json:"seen_before,omitempty"`
}

// NewAuditRecord builds the stored form of result.
func NewAuditRecord(result AnalysisResult, fingerprint string) AuditRecord {
	return AuditRecord{
		Fingerprint: fingerprint,
		Masked:      result.Masked(),
		Length:      result.Length,
		EntropyBits: result.RoundedEntropy(),
		Strength:    result.Strength,
		Flags:       result.Flags,
	}
}

// AuditRun is one saved invocation of the auditor.
type AuditRun struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Summary   Summary   `json:"summary"`

	// Records is empty when runs are listed and filled when a single run
	// is loaded.
	Records []AuditRecord `json:"records,omitempty"`
}
