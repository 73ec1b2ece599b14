// Package pagination 把任意“可计数、可按偏移切片”的数据源包装成统一的分页视图。
//
// 关系库查询和收藏存储（Redis）除了这两种能力之外没有任何共同点，
// 所以 Pager 只依赖 Counter 和 Slicer，不假设数据来自哪里。
package pagination

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const DefaultPageSize = 15

var (
	ErrOutOfRange      = errors.New("page out of range")
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrPageSizeLocked  = errors.New("page size can not change after pages were requested")
)

// OutOfRangeError 严格模式下请求了不存在的页
type OutOfRangeError struct {
	Page       int
	TotalPages int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("page %d out of range (total pages %d)", e.Page, e.TotalPages)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// Counter 返回集合总数
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Slicer 返回 [offset, offset+limit) 区间的元素，只有到达集合末尾时才会少于 limit
type Slicer[T any] interface {
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// Source 分页数据源
type Source[T any] interface {
	Counter
	Slicer[T]
}

// SourceFuncs 用两个函数构造数据源
type SourceFuncs[T any] struct {
	CountFunc func(ctx context.Context) (int, error)
	SliceFunc func(ctx context.Context, offset, limit int) ([]T, error)
}

func (s SourceFuncs[T]) Count(ctx context.Context) (int, error) {
	return s.CountFunc(ctx)
}

func (s SourceFuncs[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	return s.SliceFunc(ctx, offset, limit)
}

// Page 一页结果
type Page[T any] struct {
	Items       []T `json:"items"`
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// Pager 分页器，每个请求单独创建，不在请求之间共享
type Pager[T any] struct {
	src      Source[T]
	pageSize int
	lenient  bool
	locked   bool
}

type Option func(*options)

type options struct {
	pageSize int
	lenient  bool
}

// WithPageSize 设置每页数量，非正数忽略
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithLenient 宽松模式：越界页返回空结果而不是错误
func WithLenient(lenient bool) Option {
	return func(o *options) {
		o.lenient = lenient
	}
}

func New[T any](src Source[T], opts ...Option) *Pager[T] {
	o := options{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pager[T]{
		src:      src,
		pageSize: o.pageSize,
		lenient:  o.lenient,
	}
}

// SetPageSize 修改每页数量，请求过页面之后不允许再改
func (p *Pager[T]) SetPageSize(n int) error {
	if n <= 0 {
		return ErrInvalidPageSize
	}
	if p.locked {
		return ErrPageSizeLocked
	}
	p.pageSize = n
	return nil
}

func (p *Pager[T]) PageSize() int {
	return p.pageSize
}

// Page 获取第 page 页（从 1 开始）。
// 每次调用最多一次 Count 和一次 Slice；页码越界时不会调用 Slice。
func (p *Pager[T]) Page(ctx context.Context, page int) (Page[T], error) {
	p.locked = true

	total, err := p.src.Count(ctx)
	if err != nil {
		return Page[T]{}, fmt.Errorf("count: %w", err)
	}
	if total < 0 {
		total = 0
	}

	result := Page[T]{
		Items:       []T{},
		TotalCount:  total,
		TotalPages:  TotalPages(total, p.pageSize),
		CurrentPage: page,
		PageSize:    p.pageSize,
	}

	// 空集合的第一页总是合法的
	if page < 1 || page > max(result.TotalPages, 1) {
		if p.lenient {
			return result, nil
		}
		return Page[T]{}, &OutOfRangeError{Page: page, TotalPages: result.TotalPages}
	}
	if total == 0 {
		return result, nil
	}

	items, err := p.src.Slice(ctx, (page-1)*p.pageSize, p.pageSize)
	if err != nil {
		return Page[T]{}, fmt.Errorf("slice: %w", err)
	}
	if items != nil {
		result.Items = items
	}
	return result, nil
}

// TotalPages ceil(total / size)
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ParsePage 解析查询参数中的页码，缺省或非法时为 1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// Map 转换一页中的元素类型，分页信息保持不变
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:       items,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		PageSize:    p.PageSize,
	}
}
