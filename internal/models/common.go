package models

import "time"

// AuditFields holds the audit timestamps stored on every ledger table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
