package app

// 版本信息，由构建时通过 -ldflags 注入
var (
	// Name 服务名称
	Name = "Keep Note Service"
	// Version 版本号
	Version = "dev"
	// GitTag Git 标签
	GitTag = ""
	// BuildTime 构建时间
	BuildTime = ""
)
