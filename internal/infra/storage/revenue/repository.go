package revenue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"branch_id",
	"booking_id",
	"amount",
	"recorded_by",
	"notes",
	"created_at",
}

// Repository репозиторий журнала выручки (append-only)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория выручки
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал выручки
func (r *Repository) Create(ctx context.Context, entry *domain.RevenueEntry) (*domain.RevenueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("revenue_entries").
		Columns("branch_id", "booking_id", "amount", "recorded_by", "notes").
		Values(entry.BranchID, entry.BookingID, entry.Amount, entry.RecordedBy, entry.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetByBranchWithPeriod получает записи журнала по филиалу за период
func (r *Repository) GetByBranchWithPeriod(ctx context.Context, filter domain.RevenuePeriodFilter) ([]*domain.RevenueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("revenue_entries").
		Where(squirrel.Eq{"branch_id": filter.BranchID}).
		OrderBy("created_at DESC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.RevenueEntry, 0)

	for rows.Next() {
		var entry domain.RevenueEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BranchID,
			&entry.BookingID,
			&entry.Amount,
			&entry.RecordedBy,
			&entry.Notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBranchWithPeriod - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithPeriod - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// SumByBranchWithPeriod считает суммарную выручку филиала за период
func (r *Repository) SumByBranchWithPeriod(ctx context.Context, filter domain.RevenuePeriodFilter) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("revenue_entries").
		Where(squirrel.Eq{"branch_id": filter.BranchID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumByBranchWithPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumByBranchWithPeriod - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// GetByBookingID получает запись журнала по бронированию
// Используется для защиты от повторной записи выручки за одно бронирование
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.RevenueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("revenue_entries").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.RevenueEntry
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.BranchID,
		&entry.BookingID,
		&entry.Amount,
		&entry.RecordedBy,
		&entry.Notes,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan entry: %v", ErrScanRow, err)
	}

	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
