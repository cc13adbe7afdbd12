package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"course_completion_report/internal/app"
	"course_completion_report/internal/domain/report"
	"course_completion_report/internal/infra/config"
	idb "course_completion_report/internal/infra/database"
	"course_completion_report/internal/infra/logger"
	"course_completion_report/internal/infra/scheduler"
	"course_completion_report/internal/infra/telegram"
	"course_completion_report/internal/infra/web"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/telebot.v3"
)

const (
	shutdownTimeout = 15 * time.Second
	deliveryTimeout = 30 * time.Minute
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP and run scheduled deliveries",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply the embedded schema before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, db, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if serveMigrate {
		if err := idb.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Log.Info("Database schema is up to date.")
	}

	exports := newExportService(cfg, db)
	mainLogger := logger.Component("main")

	// Initialize Telegram Bot
	var (
		bot             *telebot.Bot
		exportScheduler *scheduler.ExportScheduler
	)
	if cfg.TelegramEnabled() {
		bot, err = newBot(cfg)
		if err != nil {
			return err
		}
		adminService := app.NewAdminService(exports, cfg.AdminTelegramID)
		telegram.RegisterBotCommands(bot, adminService, logger.Component("telegram"))
		telegram.RegisterAdminHandlers(ctx, bot, adminService, logger.Component("telegram_admin"))
		mainLogger.Info("Telegram handlers registered.")

		delivery := app.NewDeliveryServiceImpl(
			exports,
			telegram.NewTelebotAdapter(bot),
			logger.Component("delivery_service"),
			cfg.ManagerTelegramID,
			cfg.ExportCourseIDs,
			report.Format(cfg.ExportFormat),
		)
		exportScheduler = scheduler.NewExportScheduler(delivery, logger.Component("scheduler"), cfg.ExportCronSpec, cfg.Location, deliveryTimeout)
		if err := exportScheduler.Start(); err != nil {
			return err
		}
		mainLogger.WithField("next_run", exportScheduler.Next()).Info("Scheduled delivery enabled.")

		// Start bot in a goroutine so it doesn't block graceful shutdown handling
		go bot.Start()
	} else {
		mainLogger.Info("TELEGRAM_TOKEN not set; bot and scheduled delivery are disabled.")
	}

	handler := web.NewReportHandler(exports, logger.Component("http"))
	srv := web.NewServer(cfg.HTTPAddr, web.NewRouter(handler, logger.Component("http")))

	runErr := serveHTTP(ctx, srv, mainLogger)

	if exportScheduler != nil {
		exportScheduler.Stop()
	}
	if bot != nil {
		bot.Stop()
	}
	if runErr != nil {
		return runErr
	}
	mainLogger.Info("Application shut down gracefully.")
	return nil
}

// serveHTTP runs srv until ctx is done or the server fails, then shuts it
// down. A failure to serve is returned.
func serveHTTP(ctx context.Context, srv *http.Server, log *logrus.Entry) error {
	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down application...")
	case err := <-serveErr:
		if err != nil {
			log.WithError(err).Error("HTTP server failed")
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server did not shut down cleanly")
	}
	return runErr
}

func newBot(cfg *config.AppConfig) (*telebot.Bot, error) {
	botLogger := logger.Component("telebot")
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := botLogger.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID).WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		return nil, err
	}
	return bot, nil
}
