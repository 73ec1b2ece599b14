package favorite

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"terminal-terrace/registry/pkg/database"
)

// ErrStoreUnavailable 收藏存储访问失败，调用方据此降级
var ErrStoreUnavailable = errors.New("favorite store unavailable")

// Store 收藏关系存储在 Redis 有序集合中，分值为收藏时间（unix 秒）：
//
//	usr:{userID}:fav  用户收藏的包 ID
//	pkg:{packageID}:fav  收藏该包的用户 ID
type Store struct {
	rdb *database.RedisClient
	now func() time.Time
}

func NewStore(rdb *database.RedisClient) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

func userKey(userID uint) string {
	return fmt.Sprintf("usr:%d:fav", userID)
}

func packageKey(packageID uint) string {
	return fmt.Sprintf("pkg:%d:fav", packageID)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// Ping 连通性检查
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.IsConnected(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Count 用户收藏数量
func (s *Store) Count(ctx context.Context, userID uint) (int, error) {
	n, err := s.rdb.ZCard(ctx, userKey(userID)).Result()
	if err != nil {
		return 0, unavailable("count", err)
	}
	return int(n), nil
}

// Page 按收藏时间倒序返回 [offset, offset+limit) 区间的包 ID
func (s *Store) Page(ctx context.Context, userID uint, offset, limit int) ([]uint, error) {
	if limit <= 0 {
		return []uint{}, nil
	}
	members, err := s.rdb.ZRevRange(ctx, userKey(userID), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, unavailable("page", err)
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			// 非法成员直接忽略
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// Mark 收藏，重复收藏只刷新时间
func (s *Store) Mark(ctx context.Context, userID, packageID uint) error {
	score := float64(s.now().Unix())
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, userKey(userID), redis.Z{Score: score, Member: packageID})
		pipe.ZAdd(ctx, packageKey(packageID), redis.Z{Score: score, Member: userID})
		return nil
	})
	if err != nil {
		return unavailable("mark", err)
	}
	return nil
}

// Remove 取消收藏，不存在时同样成功
func (s *Store) Remove(ctx context.Context, userID, packageID uint) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, userKey(userID), packageID)
		pipe.ZRem(ctx, packageKey(packageID), userID)
		return nil
	})
	if err != nil {
		return unavailable("remove", err)
	}
	return nil
}

// IsFavorite 用户是否收藏了该包
func (s *Store) IsFavorite(ctx context.Context, userID, packageID uint) (bool, error) {
	_, err := s.rdb.ZScore(ctx, userKey(userID), strconv.FormatUint(uint64(packageID), 10)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("is favorite", err)
	}
	return true, nil
}

// FaverCount 收藏该包的用户数
func (s *Store) FaverCount(ctx context.Context, packageID uint) (int, error) {
	n, err := s.rdb.ZCard(ctx, packageKey(packageID)).Result()
	if err != nil {
		return 0, unavailable("faver count", err)
	}
	return int(n), nil
}

// FaverCounts 批量获取收藏数，一次往返
func (s *Store) FaverCounts(ctx context.Context, packageIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(packageIDs))
	if len(packageIDs) == 0 {
		return counts, nil
	}

	cmds := make([]*redis.IntCmd, len(packageIDs))
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range packageIDs {
			cmds[i] = pipe.ZCard(ctx, packageKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, unavailable("faver counts", err)
	}

	for i, id := range packageIDs {
		counts[id] = int(cmds[i].Val())
	}
	return counts, nil
}
