package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grocery/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	itemsKey = "grocery:items"
	itemsTTL = 30 * time.Second
)

// ItemsCache кэширует список товаров в Redis по схеме cache-aside.
// Nil-кэш означает, что кэширование отключено: все методы безопасно
// работают на nil-получателе.
type ItemsCache struct {
	client *redis.Client
}

// NewItemsCache создает кэш списка товаров поверх клиента Redis.
func NewItemsCache(client *redis.Client) *ItemsCache {
	return &ItemsCache{client: client}
}

// Get возвращает закэшированный список товаров. Второе значение - признак попадания.
func (c *ItemsCache) Get(ctx context.Context) ([]model.Item, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, itemsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("redis unmarshal: %w", err)
	}
	return items, true, nil
}

// Set сохраняет список товаров с TTL.
func (c *ItemsCache) Set(ctx context.Context, items []model.Item) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemsKey, payload, itemsTTL).Err()
}

// Invalidate сбрасывает кэш после изменения каталога.
func (c *ItemsCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, itemsKey).Err()
}
