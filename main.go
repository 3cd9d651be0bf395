package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/shostako/yasuragi-no-sato/configs"
	"github.com/shostako/yasuragi-no-sato/middlewares"
	"github.com/shostako/yasuragi-no-sato/routes"
	"github.com/shostako/yasuragi-no-sato/ws"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// 管理画面向けイベント配信
	hub := ws.NewAdminHub()
	go hub.Run()

	// HTTP
	r := gin.Default()

	r.Use(middlewares.CORSMiddleware())

	// ニュース画像などのアップロード配信
	r.Static("/uploads", "./"+cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
