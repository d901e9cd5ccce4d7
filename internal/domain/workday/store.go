package workday

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]WorkDay, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employer_id, date, kilometers, calculation_mode, segments,
           regular_hours, overtime_hours, total_before_vat, total_with_vat,
           created_at, updated_at
    FROM work_days
    ORDER BY date, id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]WorkDay, 0)
	for rows.Next() {
		day, err := scanWorkDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*WorkDay, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, employer_id, date, kilometers, calculation_mode, segments,
           regular_hours, overtime_hours, total_before_vat, total_with_vat,
           created_at, updated_at
    FROM work_days
    WHERE id = $1
  `, id)

	day, err := scanWorkDay(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *Store) Create(ctx context.Context, day *WorkDay) error {
	segments, err := json.Marshal(day.Segments)
	if err != nil {
		return err
	}
	return s.DB.QueryRow(ctx, `
    INSERT INTO work_days (id, employer_id, date, kilometers, calculation_mode, segments,
                           regular_hours, overtime_hours, total_before_vat, total_with_vat)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING created_at, updated_at
  `,
		day.ID, day.EmployerID, day.Date, day.Kilometers, day.CalculationMode, segments,
		day.RegularHours, day.OvertimeHours, day.TotalBeforeVat, day.TotalWithVat,
	).Scan(&day.CreatedAt, &day.UpdatedAt)
}

func (s *Store) Update(ctx context.Context, day *WorkDay) error {
	segments, err := json.Marshal(day.Segments)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE work_days
    SET employer_id = $2, date = $3, kilometers = $4, calculation_mode = $5,
        segments = $6, regular_hours = $7, overtime_hours = $8,
        total_before_vat = $9, total_with_vat = $10, updated_at = now()
    WHERE id = $1
  `,
		day.ID, day.EmployerID, day.Date, day.Kilometers, day.CalculationMode, segments,
		day.RegularHours, day.OvertimeHours, day.TotalBeforeVat, day.TotalWithVat,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateComputed persists only the derived fields, used by the batch
// recompute after an employer's rate card changes.
func (s *Store) UpdateComputed(ctx context.Context, day *WorkDay) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE work_days
    SET regular_hours = $2, overtime_hours = $3, total_before_vat = $4,
        total_with_vat = $5, updated_at = now()
    WHERE id = $1
  `, day.ID, day.RegularHours, day.OvertimeHours, day.TotalBeforeVat, day.TotalWithVat)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM work_days WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWorkDay(row interface{ Scan(dest ...any) error }) (WorkDay, error) {
	var day WorkDay
	var segments []byte
	err := row.Scan(
		&day.ID, &day.EmployerID, &day.Date, &day.Kilometers, &day.CalculationMode, &segments,
		&day.RegularHours, &day.OvertimeHours, &day.TotalBeforeVat, &day.TotalWithVat,
		&day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		return WorkDay{}, err
	}
	day.Segments = make([]WorkSegment, 0)
	if len(segments) > 0 {
		if err := json.Unmarshal(segments, &day.Segments); err != nil {
			return WorkDay{}, err
		}
	}
	day.SyncLegacyFields()
	return day, nil
}
