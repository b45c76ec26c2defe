package protocal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"telegram-relay/configs"
	httpAdapter "telegram-relay/internal/adapters/input/http"
	"telegram-relay/internal/application"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// newApp registers the routes on a fresh fiber app
func newApp(hdl *httpAdapter.HTTPHandler, webhookHdl *httpAdapter.WebhookHandler, debug bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "telegram-relay",
		DisableStartupMessage: !debug,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + httpAdapter.SecretTokenHeader,
	}))

	app.Get("/", hdl.Root)
	app.Get("/health", hdl.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault) // default

	api := app.Group("/v1/api")
	{
		api.Get("/webhook", hdl.WebhookStatus)
	}

	// Telegram webhook endpoint
	webhook := app.Group("/webhook")
	{
		webhook.Post("/:secret", webhookHdl.HandleWebhook)
	}

	return app
}

// ServeHTTP func - Runs the relay in webhook mode until SIGINT or SIGTERM
func ServeHTTP(cfg *configs.Config) error {
	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	rt.start()

	// Wire up the hexagonal architecture layers
	webhookSrv := application.NewWebhookService(rt.client, cfg.WebhookURL(), cfg.Webhook.Secret)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	err = webhookSrv.Register(ctx)
	cancel()
	if err != nil {
		rt.stop()
		return err
	}

	// Input adapters (HTTP handlers)
	hdl := httpAdapter.New(webhookSrv, rt.journal, rt.dispatcher, cfg.Bot.Mode)
	webhookHdl := httpAdapter.NewWebhookHandler(rt.dispatcher, cfg.Webhook.Secret)
	app := newApp(hdl, webhookHdl, cfg.App.Debug)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		logrus.Infof("Graceful shut down on %v ...", sig)
		// the webhook stays registered so the next update wakes a slept instance
		if err := app.ShutdownWithTimeout(drainTimeout); err != nil {
			logrus.Errorln("Error when shutdown server: ", err)
		}
	}()

	logrus.Infoln("Listening on port:", cfg.App.Port)
	err = app.Listen(":" + cfg.App.Port)
	signal.Stop(c)
	rt.stop()
	return err
}
