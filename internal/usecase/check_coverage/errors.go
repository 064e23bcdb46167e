package check_coverage

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных координатах
	ErrInvalidInput = errors.New("check_coverage: invalid input data")

	// ErrCoverageDataUnavailable возвращается, когда нет данных о командах
	ErrCoverageDataUnavailable = errors.New("check_coverage: coverage data unavailable")
)
