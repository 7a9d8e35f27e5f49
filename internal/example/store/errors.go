package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"scaffold/pkg/platform/sentinel"
)

// translatePostgres maps driver failures onto the repository sentinels.
// Class 23 is integrity constraint violation; 08, 53 and 57 cover connection
// loss, resource exhaustion and operator intervention.
func translatePostgres(op string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23":
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
		case "08", "53", "57":
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// translateRedis treats every failure that is not a server reply as transient.
func translateRedis(op string, err error) error {
	if err == nil {
		return nil
	}
	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// invalidRow keeps the domain's complaint as text only so its code does not
// leak as a validation failure.
func invalidRow(id string, err error) error {
	return fmt.Errorf("rehydrate example %s: %w: %v", id, sentinel.ErrInvalidState, err)
}

