package repo

import (
	"context"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
)

type (
	// AuditLog is append-only: an Append never rewrites earlier records.
	AuditLog interface {
		Append(ctx context.Context, record entity.AuditRecord) error
	}

	ReceiptArchive interface {
		Store(ctx context.Context, key string, png []byte) error
	}
)
