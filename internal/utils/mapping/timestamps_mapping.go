package mapping

import (
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// ToDomainTimestamps groups the bookkeeping columns of a row.
func ToDomainTimestamps(createdAt, updatedAt time.Time) domain.Timestamps {
	return domain.Timestamps{
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
