package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCache はセッション空席数のキャッシュを管理する
// 空席数は読み取り時に導出される値であり、キャッシュは短いTTLで保持する
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheインスタンスを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// GetAvailableCount はセッションの空席数をキャッシュから取得する
func (c *AvailabilityCache) GetAvailableCount(ctx context.Context, sessionID int64) (int, error) {
	key := c.availableCountKey(sessionID)
	val, err := c.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetAvailableCount はセッションの空席数をキャッシュに保存する
func (c *AvailabilityCache) SetAvailableCount(ctx context.Context, sessionID int64, count int, ttl time.Duration) error {
	key := c.availableCountKey(sessionID)
	err := c.client.Set(ctx, key, count, ttl).Err()
	if err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はセッションのキャッシュを無効化する
// 予約確定後に呼び出し、古い空席数が残らないようにする
func (c *AvailabilityCache) Invalidate(ctx context.Context, sessionID int64) error {
	key := c.availableCountKey(sessionID)
	err := c.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) availableCountKey(sessionID int64) string {
	return fmt.Sprintf("sessions:available:%d", sessionID)
}
