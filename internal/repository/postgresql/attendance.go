package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.timestamp, a.type, a.status, a.is_late, a.justification,
	a.validated_at, a.validated_by, a.rejection_reason, a.created_at, e.full_name`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	var recordType, status string

	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Timestamp, &recordType, &status, &r.IsLate, &r.Justification,
		&r.ValidatedAt, &r.ValidatedBy, &r.RejectionReason, &r.CreatedAt, &r.EmployeeName,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	r.Type = attendance.Type(recordType)
	r.Status = attendance.Status(status)
	return r, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, timestamp, type, status, is_late, justification, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Timestamp,
		string(record.Type),
		string(record.Status),
		record.IsLate,
		record.Justification,
		record.CreatedAt,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return record, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.timestamp >= $%d", argIndex))
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.timestamp < $%d", argIndex))
		args = append(args, *filter.To)
		argIndex++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Type != nil && *filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("a.type = $%d", argIndex))
		args = append(args, *filter.Type)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_records a %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.timestamp DESC, a.id DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// Resolve implements attendance.AttendanceRepository. The status guard in
// the WHERE clause makes concurrent reviewers race on a single row update.
func (a *attendanceRepository) Resolve(ctx context.Context, id string, res attendance.Resolution) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH updated AS (
			UPDATE attendance_records
			SET status = $2, validated_at = $3, validated_by = $4, rejection_reason = $5
			WHERE id = $1 AND status = 'pending_approval'
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM updated a
		JOIN employees e ON e.id = a.employee_id
	`

	record, err := scanRecord(q.QueryRow(ctx, query,
		id, string(res.Status), res.ValidatedAt, res.ValidatedBy, res.RejectionReason,
	))
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, fmt.Errorf("failed to resolve attendance %s: %w", id, err)
	}

	// nothing updated: either missing or already resolved
	if _, err := a.GetByID(ctx, id); err != nil {
		return attendance.Record{}, err
	}
	return attendance.Record{}, attendance.ErrNotPending
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
