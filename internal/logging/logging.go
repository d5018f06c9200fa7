package logging

import (
	"sync"

	"go.uber.org/zap"
)

var once sync.Once

// Init 初始化全局 zap logger，进程内只执行一次。
// dev 模式输出彩色可读日志，生产模式输出 JSON。
func Init(dev bool) {
	once.Do(func() {
		var (
			logger *zap.Logger
			err    error
		)
		if dev {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			panic(err)
		}
		zap.ReplaceGlobals(logger)
	})
}
