// Package main starts the touchstick server.
package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/frudas24/touchstick/internal/app"
	"github.com/frudas24/touchstick/internal/config"
	"github.com/frudas24/touchstick/internal/eventloop"
	"github.com/frudas24/touchstick/internal/hostinput"
	"github.com/frudas24/touchstick/internal/rtc"
	"github.com/frudas24/touchstick/internal/session"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rtc.SetDebugLogging(debug)
	if debug {
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	sess := session.New(cfg.UIPassword)

	injector, err := hostinput.NewInjector()
	if err != nil {
		if !errors.Is(err, hostinput.ErrUnsupported) {
			return err
		}
		log.Printf("host input unavailable: %v", err)
	}

	loop := eventloop.New()
	loop.Start()
	defer loop.Stop()

	appInstance, err := app.New(cfg, sess, loop, injector)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer appInstance.Stop()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Printf("touchstick starting")
	logEnvStatus(cfg)
	log.Printf("profiles path: %s", cfg.ProfilesPath)
	if cfg.PreviewEnabled {
		log.Printf("preview: enabled (%dpx every %dms)", cfg.PreviewSize, cfg.PreviewIntervalMs)
	} else {
		log.Printf("preview: disabled")
	}
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and required values are set.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
	if strings.TrimSpace(os.Getenv("UI_PASSWORD")) == "" {
		log.Printf("env UI_PASSWORD: missing")
	} else {
		log.Printf("env UI_PASSWORD: set")
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
