package business

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Get returns the singleton row. Seeding guarantees it exists, but a zero
// value is returned if it does not, since missing details only blank the
// report header.
func (s *Store) Get(ctx context.Context) (Details, error) {
	var details Details
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(logo, ''), COALESCE(name, ''), COALESCE(business_number, ''),
           COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
           COALESCE(bank_name, ''), COALESCE(bank_branch, ''), COALESCE(bank_account, '')
    FROM business_details
    LIMIT 1
  `).Scan(
		&details.Logo, &details.Name, &details.BusinessNumber,
		&details.Address, &details.Phone, &details.Email,
		&details.BankName, &details.BankBranch, &details.BankAccount,
	)
	if err != nil {
		return Details{}, err
	}
	return details, nil
}

func (s *Store) Save(ctx context.Context, details Details) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE business_details
    SET logo = $1, name = $2, business_number = $3, address = $4,
        phone = $5, email = $6, bank_name = $7, bank_branch = $8,
        bank_account = $9, updated_at = now()
  `,
		details.Logo, details.Name, details.BusinessNumber, details.Address,
		details.Phone, details.Email, details.BankName, details.BankBranch,
		details.BankAccount,
	)
	return err
}
