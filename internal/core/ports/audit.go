package ports

import (
	"context"

	"github.com/luestilo/retail-api/internal/core/domain"
)

// AuditRecorder persists a single audit entry.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AuditSink accepts audit entries for asynchronous persistence. Enqueue must
// not block request handling beyond channel buffering.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}

// NopAuditSink discards entries. Used in tests and when auditing is disabled.
type NopAuditSink struct{}

func (NopAuditSink) Enqueue(domain.AuditEntry) {}
