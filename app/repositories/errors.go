package repositories

import (
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// translate maps driver and gorm errors onto the errs taxonomy.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, errs.ErrDuplicateItem)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWaitTimeout) {
		return fmt.Errorf("%s: %w: %v", op, errs.ErrConflictOnAggregate, err)
	}

	for _, known := range []error{errs.ErrNotFound, errs.ErrDuplicateItem, errs.ErrConflictOnAggregate, errs.ErrValidation, errs.ErrUpstreamUnavailable} {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return errs.Upstream(op, err)
}
