// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	"github.com/haierkeys/keep-note-service/internal/app"
	"github.com/haierkeys/keep-note-service/internal/middleware"
	"github.com/haierkeys/keep-note-service/internal/routers/api_router"
	"github.com/haierkeys/keep-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/note",
		FillInterval: time.Second,
		Capacity:     50,
		Quantum:      50,
	},
	limiter.BucketRule{
		Key:          "/api/notes",
		FillInterval: time.Second,
		Capacity:     100,
		Quantum:      100,
	},
)

// NewRouter 创建对外 HTTP 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.TraceMiddleware(cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)

		auth := middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey)

		api.Use(auth).POST("/note", noteHandler.Create)
		api.Use(auth).GET("/note/:id", noteHandler.Get)
		api.Use(auth).PUT("/note/:id", noteHandler.Update)
		api.Use(auth).DELETE("/note/:id", noteHandler.Delete)
		api.Use(auth).PATCH("/note/:id/pin", noteHandler.TogglePin)

		api.Use(auth).GET("/notes", noteHandler.List)
		api.Use(auth).GET("/notes/archived", noteHandler.ListArchived)
		api.Use(auth).GET("/notes/trash", noteHandler.ListTrash)
		api.Use(auth).GET("/notes/label/:labelId", noteHandler.ListByLabel)
	}

	r.NoRoute(middleware.NoFound())

	return r
}

// NewPrivateRouter 创建私有监听路由（指标与运行时信息）
func NewPrivateRouter() *gin.Engine {
	r := gin.New()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/debug/vars", api_router.Expvar)
	return r
}
