package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
	codec  Codec
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, codec Codec) *RedisStore {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &RedisStore{client: client, codec: codec}
}

// --- 存档 ---

// SaveGame 保存存档到 Redis
func (rs *RedisStore) SaveGame(ctx context.Context, snap *GameSnapshot) error {
	if snap == nil {
		return nil
	}

	data, err := rs.codec.Marshal(snap)
	if err != nil {
		return err
	}
	return rs.client.Set(ctx, SessionKey, data, 0).Err()
}

// LoadGame 从 Redis 加载存档
func (rs *RedisStore) LoadGame(ctx context.Context) (*GameSnapshot, error) {
	data, err := rs.client.Get(ctx, SessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 没有存档
		}
		return nil, err
	}

	var snap GameSnapshot
	if err := rs.codec.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// DeleteGame 删除存档
func (rs *RedisStore) DeleteGame(ctx context.Context) error {
	return rs.client.Del(ctx, SessionKey).Err()
}

// HasGame 检查是否有存档
func (rs *RedisStore) HasGame(ctx context.Context) (bool, error) {
	n, err := rs.client.Exists(ctx, SessionKey).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- 对局记录 ---

// RecordResult 记录对局结果，只保留最近 MaxResults 条
func (rs *RedisStore) RecordResult(ctx context.Context, result *GameResult) error {
	if result == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化对局结果失败: %w", err)
	}

	pipe := rs.client.TxPipeline()
	pipe.LPush(ctx, ResultsKey, data)
	pipe.LTrim(ctx, ResultsKey, 0, MaxResults-1)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentResults 获取最近的对局结果，最新的在前
func (rs *RedisStore) RecentResults(ctx context.Context, limit int) ([]*GameResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	items, err := rs.client.LRange(ctx, ResultsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*GameResult, 0, len(items))
	for _, item := range items {
		var r GameResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("反序列化对局结果失败: %w", err)
		}
		results = append(results, &r)
	}
	return results, nil
}

// Close 关闭连接
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
