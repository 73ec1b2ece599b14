// Package provider 维护下游 provider 索引：Redis 集合 set:packages 中保存所有可发布的包名（小写）。
package provider

import (
	"context"
	"fmt"
	"strings"

	"terminal-terrace/registry/pkg/database"
)

const indexKey = "set:packages"

// Index provider 索引
type Index struct {
	rdb *database.RedisClient
}

func NewIndex(rdb *database.RedisClient) *Index {
	return &Index{rdb: rdb}
}

func normalize(name string) string {
	return strings.ToLower(name)
}

// Add 加入索引
func (i *Index) Add(ctx context.Context, name string) error {
	if err := i.rdb.SAdd(ctx, indexKey, normalize(name)).Err(); err != nil {
		return fmt.Errorf("add %s to provider index: %w", name, err)
	}
	return nil
}

// Remove 从索引中移除，包不在索引中时同样成功
func (i *Index) Remove(ctx context.Context, name string) error {
	if err := i.rdb.SRem(ctx, indexKey, normalize(name)).Err(); err != nil {
		return fmt.Errorf("remove %s from provider index: %w", name, err)
	}
	return nil
}

// Exists 包是否在索引中
func (i *Index) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := i.rdb.SIsMember(ctx, indexKey, normalize(name)).Result()
	if err != nil {
		return false, fmt.Errorf("check provider index: %w", err)
	}
	return ok, nil
}

// Count 索引中的包数量
func (i *Index) Count(ctx context.Context) (int, error) {
	n, err := i.rdb.SCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("count provider index: %w", err)
	}
	return int(n), nil
}

// Ping 连通性检查
func (i *Index) Ping(ctx context.Context) error {
	return i.rdb.IsConnected(ctx)
}
