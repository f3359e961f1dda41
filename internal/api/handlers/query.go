package handlers

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// ParseOptionalDate читает дату YYYY-MM-DD из query параметра; пустой параметр дает nil
func ParseOptionalDate(query url.Values, key string) (*time.Time, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", key, raw)
	}
	return &date, nil
}

// ReportQuery параметры периода отчета о продажах
type ReportQuery struct {
	Granularity string
	StartDate   *time.Time
	EndDate     *time.Time
	Timezone    string
}

// ParseReportQuery читает granularity (по умолчанию day), startDate, endDate и timezone
func ParseReportQuery(query url.Values) (*ReportQuery, error) {
	startDate, err := ParseOptionalDate(query, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := ParseOptionalDate(query, "endDate")
	if err != nil {
		return nil, err
	}

	granularity := query.Get("granularity")
	if granularity == "" {
		granularity = string(domain.GranularityDay)
	}

	return &ReportQuery{
		Granularity: granularity,
		StartDate:   startDate,
		EndDate:     endDate,
		Timezone:    query.Get("timezone"),
	}, nil
}
