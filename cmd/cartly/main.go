package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/cartly/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/cartly/config.toml)")
	envFile := flag.String("env", "", "environment file with CARTLY_* overrides (optional, defaults to .env)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, EnvFile: *envFile}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "cartly: %v\n", err)
		return 1
	}
	return 0
}
