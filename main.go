package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/ventures/internal/catalog"
	"github.com/Zachkp/ventures/internal/config"
	"github.com/Zachkp/ventures/internal/logging"
	"github.com/Zachkp/ventures/internal/mail"
	"github.com/Zachkp/ventures/internal/store"
	"github.com/Zachkp/ventures/internal/web"
)

var (
	version = "dev"
	commit  = "none"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ventures",
	Short: "Venture portfolio site and catalog tools",
	Long: `ventures serves the portfolio site: the venture catalog with search,
category and stage filters, and sorting, plus the contact form.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	gin.SetMode(cfg.Server.Mode)

	logger, err := logging.New(cfg.Logging.Level, cfg.Server.Mode == gin.DebugMode, flagVerbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := store.Open(cfg.StorePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	source, err := catalog.NewSource(cfg.Catalog.Path, logger)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("catalog loaded",
		zap.Int("ventures", source.Current().Len()),
		zap.String("path", source.Path()))

	var mailer mail.Sender
	if cfg.MailConfigured() {
		mailer = mail.NewSMTPSender(mail.SMTPConfig{
			Host: cfg.Mail.Host,
			Port: cfg.Mail.Port,
			User: cfg.Mail.User,
			Pass: cfg.Mail.Pass,
			To:   cfg.Mail.To,
		})
	} else {
		logger.Warn("SMTP credentials not set; contact messages will only be stored")
	}

	sessions := web.NewSessions(cfg.IdleTimeout())
	srv, err := web.New(web.Options{
		Catalog:    source,
		Sessions:   sessions,
		Store:      db,
		Mailer:     mailer,
		Logger:     logger,
		CookieName: cfg.Session.CookieName,
		CookieTTL:  cfg.IdleTimeout(),
		StaticDir:  cfg.Server.StaticDir,
		ImagesDir:  cfg.Server.ImagesDir,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pruneMessages(ctx, db, cfg.RetentionDuration(), logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, cfg.Addr(), cfg.ShutdownTimeout())
	})
	if cfg.Catalog.Watch && source.Path() != "" {
		g.Go(func() error {
			// the site keeps serving the loaded catalog without a watcher
			if err := source.Watch(ctx); err != nil {
				logger.Error("catalog watcher stopped", zap.Error(err))
			}
			return nil
		})
	}
	g.Go(func() error {
		sessions.Run(ctx, cfg.SweepInterval(), func(n int) {
			logger.Debug("swept idle sessions", zap.Int("removed", n))
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

func pruneMessages(ctx context.Context, db *store.Store, retention time.Duration, logger *zap.Logger) {
	n, err := db.Prune(ctx, time.Now().Add(-retention))
	if err != nil {
		logger.Warn("pruning contact messages", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("pruned contact messages", zap.Int64("deleted", n))
	}
}
