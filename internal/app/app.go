// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"

	"github.com/haierkeys/keep-note-service/internal/cache"
	"github.com/haierkeys/keep-note-service/internal/dao"
	"github.com/haierkeys/keep-note-service/internal/domain"
	"github.com/haierkeys/keep-note-service/internal/service"
	pkgapp "github.com/haierkeys/keep-note-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao
	Cache  cache.Store

	// Repository 层
	NoteRepo  domain.NoteRepository
	LabelRepo domain.LabelRepository

	// Service 层
	NoteReadService  service.NoteReadService
	NoteWriteService service.NoteWriteService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
// store: 缓存存储（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, store cache.Store) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
		Cache:  store,
	}

	// 分页默认值跟随配置
	pkgapp.DefaultPaginationConfig = pkgapp.PaginationConfig{
		DefaultPageSize: cfg.App.DefaultPageSize,
		MaxPageSize:     cfg.App.MaxPageSize,
	}

	// 创建 DatabaseConfig 用于 DAO
	dbConfig := &dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(dbConfig),
		dao.WithLogger(logger),
	)
	if err := a.Dao.Migrate("Note", "Label"); err != nil {
		return nil, fmt.Errorf("database migrate failed: %w", err)
	}

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    "keep-note-service",
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.LabelRepo = dao.NewLabelRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		Note: service.NoteServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.NoteReadService = service.NewNoteReadService(a.NoteRepo, a.LabelRepo, store, logger, svcConfig)
	a.NoteWriteService = service.NewNoteWriteService(a.NoteRepo, a.LabelRepo, store, logger)

	logger.Info("App container initialized successfully",
		zap.String("cacheType", cfg.Cache.Type),
		zap.String("databaseType", cfg.Database.Type))

	return a, nil
}

// NewCacheStore 根据配置创建缓存存储
func NewCacheStore(cfg *AppConfig) (cache.Store, error) {
	if cfg.Cache.Type == "redis" {
		return cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			PoolSize: cfg.Cache.PoolSize,
		})
	}
	return cache.NewMemoryStore(), nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.logger.Warn("cache store close failed", zap.Error(err))
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}
