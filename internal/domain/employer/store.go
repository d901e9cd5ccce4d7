package employer

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

func (s *Store) List(ctx context.Context) ([]Employer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, daily_rate, daily_hours, overtime_rate, km_rate, vat_percent, bonuses, created_at, updated_at
    FROM employers
    ORDER BY name, id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employers := make([]Employer, 0)
	for rows.Next() {
		emp, err := scanEmployer(rows)
		if err != nil {
			return nil, err
		}
		employers = append(employers, emp)
	}
	return employers, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (*Employer, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, name, daily_rate, daily_hours, overtime_rate, km_rate, vat_percent, bonuses, created_at, updated_at
    FROM employers
    WHERE id = $1
  `, id)

	emp, err := scanEmployer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) Create(ctx context.Context, emp *Employer) error {
	bonuses, err := marshalBonuses(emp.Bonuses)
	if err != nil {
		return err
	}
	return s.DB.QueryRow(ctx, `
    INSERT INTO employers (id, name, daily_rate, daily_hours, overtime_rate, km_rate, vat_percent, bonuses)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING created_at, updated_at
  `,
		emp.ID, emp.Name, emp.DailyRate, emp.DailyHours, emp.OvertimeRate,
		emp.KmRate, emp.VatPercent, bonuses,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
}

func (s *Store) Update(ctx context.Context, emp *Employer) error {
	bonuses, err := marshalBonuses(emp.Bonuses)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employers
    SET name = $2, daily_rate = $3, daily_hours = $4, overtime_rate = $5,
        km_rate = $6, vat_percent = $7, bonuses = $8, updated_at = now()
    WHERE id = $1
  `,
		emp.ID, emp.Name, emp.DailyRate, emp.DailyHours, emp.OvertimeRate,
		emp.KmRate, emp.VatPercent, bonuses,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployer(row rowScanner) (Employer, error) {
	var emp Employer
	var bonuses []byte
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.DailyRate, &emp.DailyHours, &emp.OvertimeRate,
		&emp.KmRate, &emp.VatPercent, &bonuses, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return Employer{}, err
	}
	emp.Bonuses = make([]Bonus, 0)
	if len(bonuses) > 0 {
		if err := json.Unmarshal(bonuses, &emp.Bonuses); err != nil {
			return Employer{}, err
		}
	}
	return emp, nil
}

func marshalBonuses(bonuses []Bonus) ([]byte, error) {
	if bonuses == nil {
		bonuses = []Bonus{}
	}
	return json.Marshal(bonuses)
}
