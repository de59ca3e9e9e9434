// file: internals/helpers/pg_errors.go
package helper

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// MapPGError maps postgres constraint violations to an HTTP status. It
// understands both pgx (gorm's postgres driver) and lib/pq errors.
func MapPGError(err error) (int, string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapSQLState(pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return mapSQLState(string(pqErr.Code))
	}
	return http.StatusInternalServerError, "", false
}

func mapSQLState(code string) (int, string, bool) {
	// 23505 = unique_violation
	// 23503 = foreign_key_violation
	// 23514 = check_violation
	switch code {
	case "23505":
		return http.StatusConflict, "duplicate data (unique violation)", true
	case "23503":
		return http.StatusBadRequest, "referenced row not found (FK violation)", true
	case "23514":
		return http.StatusBadRequest, "value rejected by check constraint", true
	}
	return http.StatusInternalServerError, "", false
}

// WritePGError writes the mapped error, or a 500 when err is not a known violation.
func WritePGError(c *fiber.Ctx, err error) error {
	if status, msg, ok := MapPGError(err); ok {
		return JsonError(c, status, msg)
	}
	return JsonError(c, fiber.StatusInternalServerError, "An unexpected error occurred")
}
