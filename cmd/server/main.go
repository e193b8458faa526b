/*
Package main is the entry point for the linechat server.

It loads configuration, initializes the global logging system, constructs the
registries and the chat engine, starts the TCP chat listener and the admin HTTP
server, and gracefully handles operating system interrupt signals (SIGINT,
SIGTERM) to ensure a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"linechat/internal/app/chat"
	"linechat/internal/configs"
	"linechat/internal/handler"
	"linechat/internal/pkg/logx"
	"linechat/internal/transport"
)

func main() {
	// Load a local .env file when present (development convenience).
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Str("chat_addr", cfg.ChatAddr()).
		Int("admin_port", cfg.AdminPort).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Construct the shared registries and the engine on top of them.
	conns := chat.NewConnectionRegistry()
	users := chat.NewUserRegistry()
	rooms := chat.NewChatroomRegistry()
	messenger := chat.NewMessenger(conns, users)
	processor := chat.NewCommandProcessor(rooms, users, messenger)
	lifecycle := chat.NewLifecycle(conns, users, rooms, messenger)

	deps := &handler.AppDeps{
		Config:    cfg,
		Conns:     conns,
		Users:     users,
		Rooms:     rooms,
		Lifecycle: lifecycle,
		Processor: processor,
	}

	// Admin HTTP server (health, inspection API, WebSocket gateway).
	adminAddr := fmt.Sprintf(":%d", cfg.AdminPort)
	adminServer := &http.Server{
		Addr:         adminAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Admin server starting on http://localhost%s", adminAddr))
		if serveErr := adminServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logx.Fatal(serveErr, "Admin server failed to start")
		}
	}()

	// TCP chat listener.
	chatServer := transport.NewTCPServer(cfg, lifecycle, processor)

	go func() {
		if serveErr := chatServer.ListenAndServe(ctx); serveErr != nil {
			logx.Fatal(serveErr, "Chat listener failed to start")
		}
	}()

	// Wait for the interrupt signal, then shut everything down.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if shutdownErr := adminServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logx.Error(shutdownErr, "Admin server forced to shutdown")
	}

	// Closing every write handle unblocks the per-connection read loops,
	// which then run their disconnect paths.
	for _, h := range conns.Handles() {
		h.Close()
	}
	chatServer.Wait()

	logx.Info("Server gracefully stopped.")
}
