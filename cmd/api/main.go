package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/app"
	"alfredoptarigan/resume-ranker/internal/handlers"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	a, err := app.New(context.Background(), viper.GetViper(), *configFile)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer a.Close()

	uploadHandler := handlers.NewUploadHandler(a.Pipeline, a.Storage, a.Extractor, a.Log)
	scoreHandler := handlers.NewScoreHandler(a.Pipeline)

	server := fiber.New(fiber.Config{
		AppName:      "Resume Ranker API",
		ReadTimeout:  30 * time.Second,
		BodyLimit:    int(a.Config.Storage.MaxFileSize) * 10,
		ErrorHandler: handlers.ErrorHandler,
	})

	server.Use(recover.New())
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(server, uploadHandler, scoreHandler)

	server.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Ranker API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jds",
				"POST /api/v1/resumes",
				"POST /api/v1/score",
				"GET /api/v1/scores",
				"GET /api/v1/criteria/:jd",
				"GET /api/v1/rank",
				"POST /api/v1/export",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		a.Log.Info("shutting down server")
		if err := server.Shutdown(); err != nil {
			a.Log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", a.Config.Server.Port)
	a.Log.Info("server starting", zap.String("addr", addr))

	if err := server.Listen(addr); err != nil {
		a.Log.Fatal("failed to start server", zap.Error(err))
	}
}
