// File: services/helpers.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/soccer-tournament/repositories"
)

// DateLayout is the only accepted input format for dates.
const DateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD string as a UTC calendar date.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrInvalidDate, field, value)
	}
	return t, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	s, err := parseDate("start_date", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := parseDate("end_date", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if s.After(e) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s", ErrTournamentInvalidDateRange, start, end)
	}
	return s, e, nil
}

// handleRepositoryError - общий хелпер для ошибок репозитория.
// known переводит конкретные ошибки репозитория в ошибки сервиса (пары
// repoErr, serviceErr). Остальное раскладывается по категориям.
func handleRepositoryError(err error, known ...error) error {
	if err == nil {
		return nil
	}
	for i := 0; i+1 < len(known); i += 2 {
		if errors.Is(err, known[i]) {
			return fmt.Errorf("%w: %v", known[i+1], err)
		}
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidationFailed),
		errors.Is(err, ErrIntegrity), errors.Is(err, ErrConnectivity):
		return err
	case errors.Is(err, repositories.ErrUniqueViolation),
		errors.Is(err, repositories.ErrForeignKeyViolation):
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	case errors.Is(err, repositories.ErrCheckViolation),
		errors.Is(err, repositories.ErrInvalidValue):
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return fmt.Errorf("%w: %v", ErrConnectivity, err)
}
