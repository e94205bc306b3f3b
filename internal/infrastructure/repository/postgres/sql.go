package postgres

import (
	"database/sql"
	"errors"
)

// isNotFound reports whether err is the driver's empty-result error, so the
// repositories can translate it into their own not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
