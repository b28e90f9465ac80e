// Package cache 提供笔记列表的旁路缓存存储
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cache: key not found")

// Store 缓存存储接口
// 缓存操作失败不应阻断业务流程，调用方降级为直接查库
type Store interface {
	// Get 获取缓存值，未命中返回 ErrCacheMiss
	Get(ctx context.Context, key string) (string, error)

	// Set 写入缓存值并设置过期时间
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Delete 删除指定键
	Delete(ctx context.Context, keys ...string) error

	// DeleteByPrefix 删除指定前缀的全部键
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Close 释放底层连接
	Close() error
}
