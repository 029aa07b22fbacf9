package postgres

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// duplicateDeviceError traduce la violación según el constraint: devices_pkey es el uid, el resto el nombre.
func duplicateDeviceError(err error, d *entity.Device) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "devices_pkey" {
		return fmt.Errorf("%w: uid %s", domain.ErrDuplicate, d.UID)
	}
	return fmt.Errorf("%w: name %s", domain.ErrDuplicate, d.Name)
}

// pageClause arma LIMIT/OFFSET; limit 0 significa sin límite.
func pageClause(args []any, limit, offset int) (string, []any) {
	clause := ""
	if limit > 0 {
		args = append(args, limit)
		clause += " LIMIT $" + strconv.Itoa(len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		clause += " OFFSET $" + strconv.Itoa(len(args))
	}
	return clause, args
}

