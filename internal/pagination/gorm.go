package pagination

import (
	"context"

	"gorm.io/gorm"
)

// QuerySource 关系库查询数据源
// 排序只作用于 Slice，计数语句不带 ORDER BY
type QuerySource[T any] struct {
	query *gorm.DB
	order string
}

// NewQuerySource query 需要已经带上 Model/Where/Joins 条件
func NewQuerySource[T any](query *gorm.DB, order string) *QuerySource[T] {
	return &QuerySource[T]{
		query: query.Session(&gorm.Session{}),
		order: order,
	}
}

func (s *QuerySource[T]) Count(ctx context.Context) (int, error) {
	var total int64
	if err := s.query.WithContext(ctx).Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (s *QuerySource[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	var items []T
	q := s.query.WithContext(ctx)
	if s.order != "" {
		q = q.Order(s.order)
	}
	if err := q.Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
