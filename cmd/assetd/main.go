// Command assetd serves an asset tree to raycast clients over a websocket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"raycast/internal/assetnet"
	"raycast/internal/config"
	"raycast/internal/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		logger.Log.Fatal(err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	flags := pflag.NewFlagSet("assetd", pflag.ContinueOnError)
	addr := flags.String("addr", ":8090", "listen address")
	root := flags.String("assets", cfg.Assets.Root, "asset root directory")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Log.Fatal(err)
	}

	if info, err := os.Stat(*root); err != nil || !info.IsDir() {
		logger.Log.WithField("assets", *root).Fatal("asset root is not a directory")
	}

	mux := http.NewServeMux()
	mux.Handle(assetnet.Path, assetnet.NewServer(os.DirFS(*root)))
	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Log.WithFields(logrus.Fields{
			"addr":   *addr,
			"path":   assetnet.Path,
			"assets": *root,
		}).Info("serving assets")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("shutdown incomplete")
	}
}
