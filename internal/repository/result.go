package repository

import (
	"database/sql"
	"fmt"
)

func expectOneRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s %s: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s with ID %s not found: %w", kind, id, ErrNotFound)
	}
	return nil
}
