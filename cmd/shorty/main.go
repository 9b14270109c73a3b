package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"

	"github.com/Tokebay/shorty/config"
	"github.com/Tokebay/shorty/internal/app"
	"github.com/Tokebay/shorty/internal/gateway"
	"github.com/Tokebay/shorty/internal/i18n"
	"github.com/Tokebay/shorty/internal/logger"
	"github.com/Tokebay/shorty/internal/session"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.NewConfig("shorty", args)
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	origin, err := session.Origin(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	store, closer, err := session.Open(ctx, session.Options{
		Backend:  cfg.Store,
		Origin:   origin,
		FilePath: cfg.StorePath,
		Redis:    session.RedisConfig{Addr: cfg.RedisAddr, Timeout: cfg.Timeout},
	})
	if err != nil {
		logger.Log.Error("Error opening credential store", zap.String("backend", cfg.Store), zap.Error(err))
		return err
	}
	defer closer.Close()

	links, err := app.ParseLinkVariant(cfg.LinkMode)
	if err != nil {
		return err
	}

	printer := i18n.NewPrinter(cfg.Lang)
	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	term := &terminal{w: stdout, base: base}
	deps := app.Deps{
		Gateway: gateway.New(cfg.APIBaseURL,
			gateway.WithTimeout(cfg.Timeout),
			gateway.WithNetworkMessage(printer.Sprintf(i18n.NetworkError)),
		),
		Store:     store,
		Navigator: term,
		Printer:   printer,
		Links:     links,
		Debug:     cfg.Debug,
	}

	logger.Log.Debug("Client configured",
		zap.String("api", cfg.APIBaseURL),
		zap.String("store", cfg.Store),
		zap.String("links", cfg.LinkMode),
	)
	return execute(ctx, deps, term, cfg.Args)
}
