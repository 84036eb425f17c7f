package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v3"

	"road_watch/core/api/services"
	"road_watch/core/global"
	"road_watch/core/logger"
	"road_watch/core/realtime"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// initRedis tạo redis client cho bus thông báo.
// REDIS_ADDR trống nghĩa là chạy một instance, trả về nil.
func initRedis() *redis.Client {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig
	if cfg.RedisAddr == "" {
		log.Info("Redis not configured, notifications fan out in-process only")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Warn("Redis unreachable, notifications fan out in-process only")
		client.Close()
		return nil
	}

	log.Infof("Connected to redis at %s", cfg.RedisAddr)
	return client
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.ServerConfig
	address := ":" + cfg.Address
	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	// Resolve đường dẫn tương đối từ thư mục chứa config/env
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData()

	log := logger.GetAppLogger()

	// Khởi tạo hạ tầng realtime: hub trong process + bus redis giữa các instance
	hub := realtime.NewHub()
	redisClient := initRedis()
	bus := realtime.NewBus(redisClient, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Chạy vòng subscribe của bus trong goroutine riêng với recover
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("Notification bus goroutine panic")
			}
		}()
		bus.Run(ctx)
	}()

	// Khởi tạo storage cho biên bản nghiệm thu
	storage, err := services.NewFileStorage(global.ServerConfig.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Khởi tạo các service dùng chung giữa router và bus
	notificationService := services.NewNotificationService(bus)
	assignmentService := services.NewAssignmentService(notificationService, storage)

	// Khởi tạo app và chạy Fiber server trên main thread
	app := InitFiberApp(hub, assignmentService, notificationService)
	main_thread(app)
}
