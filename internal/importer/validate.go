package importer

import (
	"fmt"

	"github.com/catchsup/catchsup/internal/domain"
)

// ValidateImportSchema checks the import schema before conversion.
// Returns a slice of all validation errors found so the user can fix
// the file in one pass.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Goals) == 0 {
		errs = append(errs, fmt.Errorf("the import file names no goals"))
	}

	seen := make(map[string]bool)
	for i, g := range schema.Goals {
		prefix := fmt.Sprintf("goals[%d]", i)

		if g.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		} else if seen[g.Title] {
			errs = append(errs, fmt.Errorf("%s.title %q appears twice", prefix, g.Title))
		}
		seen[g.Title] = true

		if _, err := domain.ParseTrainingTime(g.At); err != nil {
			errs = append(errs, fmt.Errorf("%s.at: %v", prefix, err))
		}

		if g.Cadence != "" && !domain.ValidSchedulingTypes[g.Cadence] {
			errs = append(errs, fmt.Errorf("%s.cadence: invalid value %q", prefix, g.Cadence))
		}
		if g.Interval < 0 {
			errs = append(errs, fmt.Errorf("%s.interval must not be negative", prefix))
		}
		if len(g.Weekdays) > 0 {
			if _, err := domain.ParseWeekdays(g.Weekdays); err != nil {
				errs = append(errs, fmt.Errorf("%s.weekdays: %v", prefix, err))
			}
		}
		if len(g.Days) > 0 {
			if _, err := domain.ParseMonthDays(g.Days); err != nil {
				errs = append(errs, fmt.Errorf("%s.days: %v", prefix, err))
			}
		}
		if g.DurationMin < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_min must not be negative", prefix))
		}
	}

	return errs
}
