package workday

import (
	"context"
	"errors"

	"worklog/internal/domain/employer"
)

// RecomputeAll refreshes the derived totals on every stored work day against
// each employer's current rate card and persists the result. Days whose
// employer no longer exists, or whose segments fail to parse, are skipped.
func RecomputeAll(ctx context.Context, days *Store, employers *employer.Store) (updated, skipped int, err error) {
	all, err := days.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	cache := make(map[string]*employer.Employer)
	for i := range all {
		day := &all[i]
		emp, ok := cache[day.EmployerID]
		if !ok {
			emp, err = employers.Get(ctx, day.EmployerID)
			if errors.Is(err, employer.ErrNotFound) {
				emp = nil
			} else if err != nil {
				return updated, skipped, err
			}
			cache[day.EmployerID] = emp
		}
		if emp == nil {
			skipped++
			continue
		}
		if err := day.Recompute(emp); err != nil {
			skipped++
			continue
		}
		if err := days.UpdateComputed(ctx, day); err != nil {
			return updated, skipped, err
		}
		updated++
	}
	return updated, skipped, nil
}
