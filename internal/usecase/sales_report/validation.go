package sales_report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// resolveLocation возвращает часовой пояс запроса или пояс по умолчанию
func resolveLocation(name string, fallback *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if fallback == nil {
			return time.UTC, nil
		}
		return fallback, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, name)
	}
	return loc, nil
}

// resolvePeriod вычисляет период отчета в часовом поясе loc.
//
// Без дат дневной отчет строится с начала текущих суток до now; недельному и месячному
// отчетам нужны обе даты. Конец периода - последний момент дня endDate.
func resolvePeriod(req *Request, granularity domain.Granularity, loc *time.Location, now time.Time) (Period, error) {
	switch {
	case req.StartDate == nil && req.EndDate == nil:
		if granularity != domain.GranularityDay {
			return Period{}, fmt.Errorf("%w: startDate and endDate are required for %s reports", ErrInvalidInput, granularity)
		}
		localNow := now.In(loc)
		return Period{
			From:     startOfDay(localNow, loc),
			To:       localNow,
			Location: loc,
		}, nil

	case req.StartDate == nil || req.EndDate == nil:
		return Period{}, fmt.Errorf("%w: startDate and endDate must be given together", ErrInvalidInput)
	}

	from := startOfDay(*req.StartDate, loc)
	endDay := startOfDay(*req.EndDate, loc)
	if from.After(endDay) {
		return Period{}, fmt.Errorf("%w: startDate %s is after endDate %s", ErrInvalidInput,
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}

	// Postgres хранит микросекунды, поэтому граница не должна округляться в следующие сутки
	to := endDay.AddDate(0, 0, 1).Add(-time.Microsecond)

	return Period{From: from, To: to, Location: loc}, nil
}

// startOfDay полночь календарной даты t в поясе loc. Берется дата из t как есть,
// без перевода: "2025-03-10" означает 10 марта в поясе отчета.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
