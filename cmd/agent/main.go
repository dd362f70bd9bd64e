package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pkgcheck/internal/agent"
)

func main() {
	a, err := agent.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize agent: %v", err)
	}

	go func() {
		if err := a.Start(); err != nil {
			log.Printf("Agent error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down agent...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Shutdown(ctx); err != nil {
		log.Fatalf("Agent forced to shutdown: %v", err)
	}

	log.Println("Agent exiting")
}
