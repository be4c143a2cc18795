package calculation

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// ProjectHousehold values every adult's pensions for years starting at
// startYear. Adults are projected concurrently; each goroutine writes only
// its own row of the result grid.
func (ce *CalculationEngine) ProjectHousehold(ctx context.Context, h *domain.Household, startYear, years int) ([]domain.HouseholdPensionYear, error) {
	if years <= 0 {
		years = 1
	}
	if h == nil || len(h.Adults) == 0 {
		return nil, fmt.Errorf("household has no adult")
	}

	grid := make([][]domain.PersonPensionYear, len(h.Adults))
	errs := make([]error, len(h.Adults))
	var wg sync.WaitGroup
	for i := range h.Adults {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rows := make([]domain.PersonPensionYear, 0, years)
			for y := 0; y < years; y++ {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return
				}
				row, err := ce.PensionsFor(h, h.Adults[i].Name, startYear+y)
				if err != nil {
					errs[i] = err
					return
				}
				rows = append(rows, row)
			}
			grid[i] = rows
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.HouseholdPensionYear, years)
	for y := range out {
		out[y].Year = startYear + y
		for i := range grid {
			out[y].Persons = append(out[y].Persons, grid[i][y])
		}
	}
	ce.Logger.Debugf("projected %d adults over %d years from %d", len(h.Adults), years, startYear)
	return out, nil
}
