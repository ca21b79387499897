package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/app"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/envutil"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		a.Log.Error("Failed to start background workers", "error", err)
		os.Exit(1)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		a.Log.Info("Shutdown signal received")
		a.Close()
		os.Exit(0)
	}()

	addr := ":" + envutil.Str("PORT", "8080")
	a.Log.Info("Starting HTTP server", "addr", addr)
	if err := a.Run(addr); err != nil {
		a.Log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
