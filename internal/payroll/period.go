package payroll

import (
	"fmt"
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
)

// Period is a calendar month used to group payroll generation, labeled
// "YYYY-MM".
type Period struct {
	Year  int
	Month time.Month
}

func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) Start() domain.Date {
	return domain.NewDate(p.Year, p.Month, 1)
}

// End is the last calendar day of the month: day zero of the next month.
func (p Period) End() domain.Date {
	return domain.NewDate(p.Year, p.Month+1, 0)
}

func (p Period) Days() int {
	return p.End().Day()
}

// Weeks is ceil(days/7); the overtime threshold for the period is
// Weeks() * 40 hours.
func (p Period) Weeks() int {
	return (p.Days() + 6) / 7
}

// Contains reports whether d falls inside the period month, inclusive of both
// the first and the last day.
func (p Period) Contains(d domain.Date) bool {
	return !d.Before(p.Start().Time) && !d.After(p.End().Time)
}
