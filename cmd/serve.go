package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"scrapper/core/loader"
	"scrapper/core/logger"
	"scrapper/core/middleware/auth"
	"scrapper/core/middleware/rayid"
	"scrapper/feature/integrity"
	"scrapper/feature/scrapping"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "scrapper/docs/swagger"
)

// @title Scrapper API
// @version 1.0
// @description Import pipeline for external game data.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start"},
	Short:   "Start the import API server",
	Long:    `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()
		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}

		logg := rt.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           rt.cfg.Server.ReadTimeout,
			WriteTimeout:          rt.cfg.Server.WriteTimeout,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(scrapping.NewFeature(rt.orch, rt.classifier, rt.archive, logg))
		mgr.Register(integrity.NewFeature(rt.store, rt.cfg.Storage.Bucket, scrapping.ReportPrefix, logg, rt.db))

		// RayID first so every log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Skip: rt.cfg.Server.PublicPaths}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
