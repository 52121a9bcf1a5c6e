package postgres

import (
	"context"
	"time"

	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
)

// AttemptLog persists checkout attempt outcomes for diagnostics. Rows for
// the payment_failed outcome mark remote orders that exist unpaid.
type AttemptLog struct {
	conn *Connection
}

func NewAttemptLog(conn *Connection) *AttemptLog {
	return &AttemptLog{conn: conn}
}

func (l *AttemptLog) Record(ctx context.Context, attempt order.CheckoutAttempt) error {
	query := `
		INSERT INTO checkout_attempts (cart_id, user_id, outcome, order_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := monitoring.InstrumentExec(ctx, l.conn.GetDB(), "INSERT", "checkout_attempts", query,
		attempt.CartID,
		attempt.UserID,
		attempt.Outcome,
		attempt.OrderID,
		attempt.Detail,
		attempt.CreatedAt,
	)

	return err
}

func (l *AttemptLog) ListByOutcome(ctx context.Context, outcome string, limit int) ([]order.CheckoutAttempt, error) {
	query := `
		SELECT cart_id, user_id, outcome, order_id, detail, created_at
		FROM checkout_attempts
		WHERE outcome = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := monitoring.InstrumentQuery(ctx, l.conn.GetDB(), "SELECT", "checkout_attempts", query, outcome, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []order.CheckoutAttempt
	for rows.Next() {
		var a order.CheckoutAttempt
		if err := rows.Scan(&a.CartID, &a.UserID, &a.Outcome, &a.OrderID, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

func (l *AttemptLog) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := monitoring.InstrumentExec(ctx, l.conn.GetDB(), "DELETE", "checkout_attempts",
		"DELETE FROM checkout_attempts WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
