package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"feekhata_backend/internals/configs"
	database "feekhata_backend/internals/databases"
	paymentService "feekhata_backend/internals/features/finance/payments/service"
	whatsappService "feekhata_backend/internals/features/messaging/whatsapp/service"
	middlewares "feekhata_backend/internals/middlewares"
	"feekhata_backend/internals/queue"
	routes "feekhata_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (matches statement_timeout on the DB side)
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("[ERROR] migrations failed: %v", err)
	}

	// ✅ RAZORPAY
	paymentService.InitRazorpay(configs.RazorpayKeyID, configs.RazorpayKeySecret)

	// WhatsApp delivery: AMQP-backed when a broker is configured,
	// direct HTTP to the shim otherwise.
	var queueClient *queue.Client
	if configs.AMQPURL != "" {
		qc, err := queue.NewClient(configs.AMQPURL, "feekhata", "whatsapp.outbound")
		if err != nil {
			log.Printf("[WARN] AMQP unavailable, falling back to direct sends: %v", err)
		} else {
			queueClient = qc
		}
	}
	sender := whatsappService.NewSender(queueClient)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if queueClient != nil {
		whatsappService.StartQueueWorker(workerCtx, queueClient, whatsappService.NewHTTPSender())
	}

	routes.SetupRoutes(app, database.DB, sender)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if queueClient != nil {
		queueClient.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
