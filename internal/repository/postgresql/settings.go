package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// SettingsChangedChannel is the LISTEN/NOTIFY channel raised on every replace.
const SettingsChangedChannel = "settings_changed"

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (settings.GlobalSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sbu, iess_rate, reserve_rate,
			weekday_start, weekday_end, saturday_start, saturday_end,
			half_day_off_weekday, half_day_off_start, half_day_off_end,
			updated_at, updated_by
		FROM global_settings
		WHERE id = 1
	`

	var s settings.GlobalSettings
	var weekdayStart, weekdayEnd, saturdayStart, saturdayEnd int
	var offWeekday, offStart, offEnd int

	err := q.QueryRow(ctx, query).Scan(
		&s.SBU, &s.IESSRate, &s.ReserveRate,
		&weekdayStart, &weekdayEnd, &saturdayStart, &saturdayEnd,
		&offWeekday, &offStart, &offEnd,
		&s.UpdatedAt, &s.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.GlobalSettings{}, settings.ErrSettingsNotFound
		}
		return settings.GlobalSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	s.Schedule = settings.Schedule{
		Weekday:  settings.Shift{Start: settings.ClockTime(weekdayStart), End: settings.ClockTime(weekdayEnd)},
		Saturday: settings.Shift{Start: settings.ClockTime(saturdayStart), End: settings.ClockTime(saturdayEnd)},
		HalfDayOff: settings.HalfDayOff{
			Weekday: time.Weekday(offWeekday),
			Start:   settings.ClockTime(offStart),
			End:     settings.ClockTime(offEnd),
		},
	}
	return s, nil
}

// Replace implements settings.SettingsRepository. The upsert and the change
// notification commit together.
func (r *settingsRepository) Replace(ctx context.Context, s settings.GlobalSettings) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO global_settings (
				id, sbu, iess_rate, reserve_rate,
				weekday_start, weekday_end, saturday_start, saturday_end,
				half_day_off_weekday, half_day_off_start, half_day_off_end,
				updated_at, updated_by
			) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				sbu = EXCLUDED.sbu,
				iess_rate = EXCLUDED.iess_rate,
				reserve_rate = EXCLUDED.reserve_rate,
				weekday_start = EXCLUDED.weekday_start,
				weekday_end = EXCLUDED.weekday_end,
				saturday_start = EXCLUDED.saturday_start,
				saturday_end = EXCLUDED.saturday_end,
				half_day_off_weekday = EXCLUDED.half_day_off_weekday,
				half_day_off_start = EXCLUDED.half_day_off_start,
				half_day_off_end = EXCLUDED.half_day_off_end,
				updated_at = EXCLUDED.updated_at,
				updated_by = EXCLUDED.updated_by
		`

		sch := s.Schedule
		if _, err := q.Exec(txCtx, query,
			s.SBU, s.IESSRate, s.ReserveRate,
			int(sch.Weekday.Start), int(sch.Weekday.End), int(sch.Saturday.Start), int(sch.Saturday.End),
			int(sch.HalfDayOff.Weekday), int(sch.HalfDayOff.Start), int(sch.HalfDayOff.End),
			s.UpdatedAt, s.UpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to replace settings: %w", err)
		}

		if _, err := q.Exec(txCtx, `SELECT pg_notify($1, '')`, SettingsChangedChannel); err != nil {
			return fmt.Errorf("failed to notify settings change: %w", err)
		}
		return nil
	})
}
