package snapshot

import (
	"context"
	"fmt"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Store persists snapshot rows. Implemented by the sqlite-backed database
// package; tests use in-memory fakes.
type Store interface {
	// InsertSnapshot stores one row and returns its generated id.
	InsertSnapshot(ctx context.Context, row *Row) (int64, error)
}

// SaveSnapshot flattens the report and persists it, returning the generated
// snapshot id. Store failures are wrapped, never swallowed.
func SaveSnapshot(ctx context.Context, store Store, r *model.Report, topicID string) (int64, error) {
	row, err := BuildRow(r, topicID)
	if err != nil {
		return 0, fmt.Errorf("failed to save audit snapshot: %w", err)
	}

	id, err := store.InsertSnapshot(ctx, row)
	if err != nil {
		return 0, fmt.Errorf("failed to save audit snapshot: %w", err)
	}
	return id, nil
}
