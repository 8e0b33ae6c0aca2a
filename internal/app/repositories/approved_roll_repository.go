package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tnpcell/portal/internal/pkg/logger"
)

// ApprovedRollRepository reads and populates the roll-number allow-list.
// The request path only ever calls Contains; writes happen exclusively in
// the offline roster import.
type ApprovedRollRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApprovedRollRepository creates a new ApprovedRollRepository
func NewApprovedRollRepository(db *pgxpool.Pool) *ApprovedRollRepository {
	return &ApprovedRollRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Contains reports whether a roll number is on the allow-list
func (r *ApprovedRollRepository) Contains(ctx context.Context, rollNumber string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("approved_rolls").
		Where(squirrel.Eq{"roll_number": rollNumber}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build allow-list lookup query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking allow-list: %w", err)
	}

	return exists, nil
}

// BulkInsert adds roll numbers to the allow-list, skipping ones already
// present. Returns the number of newly inserted rows.
func (r *ApprovedRollRepository) BulkInsert(ctx context.Context, rollNumbers []string) (int64, error) {
	if len(rollNumbers) == 0 {
		return 0, nil
	}

	builder := r.sb.Insert("approved_rolls").Columns("roll_number")
	for _, roll := range rollNumbers {
		builder = builder.Values(roll)
	}

	sql, args, err := builder.Suffix("ON CONFLICT (roll_number) DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build allow-list insert query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("count", len(rollNumbers)).Msg("Error inserting allow-list entries")
		return 0, fmt.Errorf("error inserting allow-list entries: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Count returns the size of the allow-list
func (r *ApprovedRollRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM approved_rolls`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting allow-list entries: %w", err)
	}
	return count, nil
}
