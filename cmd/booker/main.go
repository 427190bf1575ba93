package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/apiclient"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/cli"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := apiclient.New(cfg.APIURL, &http.Client{Timeout: 10 * time.Second})
	h := cli.New(client, os.Stdout)

	fmt.Printf("Photobooth booking console (%s). Type 'help' for commands.\n", cfg.APIURL)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if !h.Handle(ctx, scanner.Text()) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "Input error:", err)
	}
	fmt.Println("Bye")
}
