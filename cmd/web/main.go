package main

import (
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/logging"
	"github.com/iamzaidakbar/ecommerce-app/internal/server"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logging.Init(false)

	app := iris.New()
	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening", zap.String("addr", addr), zap.String("store", cfg.Store.Source))
	if err := app.Listen(addr); err != nil {
		zap.L().Fatal("web server exited", zap.Error(err))
	}
}
