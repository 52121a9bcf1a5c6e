package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkravets/storefront-service/internal/domain/cart"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

// CartStore holds serialized cart state in durable Redis slots under a
// fixed namespace, surviving restarts. It also owns the per-cart checkout
// lock used to reject concurrent checkout attempts.
type CartStore struct {
	client *redis.Client
	logger *logger.Logger
	ttl    time.Duration
}

func NewCartStore(conn *Connection, log *logger.Logger, ttl time.Duration) *CartStore {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &CartStore{
		client: client,
		logger: log,
		ttl:    ttl,
	}
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

func checkoutLockKey(cartID string) string {
	return fmt.Sprintf("checkout:lock:%s", cartID)
}

// Get loads the cart slot. A missing slot yields a fresh empty cart, not an
// error: the slot is created lazily on first save.
func (s *CartStore) Get(ctx context.Context, cartID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(cartID)).Result()
	if err == redis.Nil {
		return cart.New(cartID), nil
	}
	if err != nil {
		return nil, err
	}

	var c cart.Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		// A corrupt slot is unrecoverable; start over rather than wedge the
		// cart forever.
		s.logger.Error("Corrupt cart slot, resetting", "error", err, "cart_id", cartID)
		return cart.New(cartID), nil
	}

	return &c, nil
}

func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, cartKey(c.ID), data, s.ttl).Err()
}

func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	return s.client.Del(ctx, cartKey(cartID)).Err()
}

func (s *CartStore) AcquireCheckoutLock(ctx context.Context, cartID string, expiration time.Duration) (bool, error) {
	result, err := s.client.SetNX(ctx, checkoutLockKey(cartID), "1", expiration).Result()
	if err == nil {
		if result {
			monitoring.RecordLockSuccess("checkout")
		} else {
			monitoring.RecordLockFailure("checkout", "already_locked")
		}
	} else {
		monitoring.RecordLockFailure("checkout", "redis_error")
	}
	return result, err
}

func (s *CartStore) ReleaseCheckoutLock(ctx context.Context, cartID string) error {
	return s.client.Del(ctx, checkoutLockKey(cartID)).Err()
}
