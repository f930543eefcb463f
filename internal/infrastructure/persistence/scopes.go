package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atlas/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// paginate applies the filter's page window
func paginate(f shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(f.Offset()).Limit(f.Limit())
	}
}

// search matches term case-insensitively against any of cols. LIKE on
// lower() keeps it portable between Postgres and SQLite.
func search(term string, cols ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || len(cols) == 0 {
			return db
		}
		pattern := "%" + escapeLike(term) + "%"
		clauses := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, c := range cols {
			clauses[i] = "lower(" + c + ") LIKE ? ESCAPE '\\'"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// translate maps driver errors to domain errors. Transient failures keep
// the driver error in the chain so retries still recognize them. Domain
// errors pass through unchanged.
func translate(err error) error {
	var de *shared.DomainError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &de):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case isUniqueViolation(err):
		return shared.ErrAlreadyExists
	case IsTransient(err):
		return fmt.Errorf("%w: %w", shared.ErrUnavailable, err)
	default:
		return err
	}
}
