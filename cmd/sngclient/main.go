package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sng-lab/client"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run joins a channel, prints every frame it receives and sends what is typed on stdin.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	config, err := client.LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Join the channel.
	c, err := client.Dial(ctx, config)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		log.Info("Closing connection...")
		_ = c.Close()
	}()
	log.Info(fmt.Sprintf(">>> Connected to %s, channel %s (Ctrl+C to quit)", config.Address, config.Channel))

	// 4. Reception loop.
	shortcuts := &client.Shortcuts{}
	readErr := make(chan error, 1)
	go func() {
		for {
			frame, err := c.Read()
			if err != nil {
				readErr <- err
				return
			}
			if config.DebugJSON {
				raw, _ := json.MarshalIndent(frame, "", "  ")
				fmt.Println(string(raw))
			}
			shortcuts.Observe(frame)
			fmt.Println(client.Render(frame, config.Colours))
		}
	}()

	// 5. Typed lines become frames.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			in, ok := client.ParseLine(shortcuts.Expand(scanner.Text()))
			if !ok {
				continue
			}
			if err := c.Send(in); err != nil {
				log.Error("Failed to send frame", "error", err)
				return
			}
		}
		stop()
	}()

	select {
	case <-ctx.Done():
		log.Info("Stopping client...")
		return exitOK, nil
	case err := <-readErr:
		if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return exitOK, nil
		}
		return exitRuntime, fmt.Errorf("connection error: %w", err)
	}
}
