package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/arteralabs/artera/internal/config"
	"github.com/arteralabs/artera/internal/server"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override the environment for the common knobs.
	port := flag.String("port", cfg.Server.Port, "Server port")
	root := flag.String("storage-root", cfg.Storage.Root, "Storage root directory")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.Storage.Root = *root

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
