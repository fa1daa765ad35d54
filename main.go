package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"LocalCanvas/internal/config"
	"LocalCanvas/internal/net"
	"LocalCanvas/internal/state"
	"LocalCanvas/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (default ./"+config.DefaultFilename+" if present)")
	serve := flag.Bool("serve", false, "serve browser sessions over websocket instead of opening a window")
	discover := flag.Bool("discover", false, "list LocalCanvas servers on the LAN and exit")
	writeConfig := flag.String("write-config", "", "write the effective config as TOML to this path and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, _ := cfg.LogLevel()
	state.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	switch {
	case *writeConfig != "":
		if err := cfg.Save(*writeConfig); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Println("Wrote", *writeConfig)
	case *discover:
		runDiscover()
	case *serve:
		if err := runServer(cfg); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	default:
		runDesktop(cfg)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultFilename); err == nil {
			path = config.DefaultFilename
		}
	}
	return config.Load(path)
}

func runDesktop(cfg config.Config) {
	s, err := state.NewSession(cfg.Options())
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	ui.RunApp(s, fmt.Sprintf("%dx%d canvas, %d undo steps", cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.MaxHistory))
}

func runServer(cfg config.Config) error {
	port, err := net.ListenPort(cfg.Server.Listen)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Server.Advertise {
		zone, err := net.Advertise(cfg.Server.Instance, port)
		if err != nil {
			state.Logger().Warn("mDNS advertise failed", "component", "net", "err", err)
		} else {
			defer zone.Shutdown()
		}
	}

	pm := net.NewPeerManager(cfg.Options())
	fmt.Println("Share this address:", net.ShareURL(port))
	err = net.Serve(ctx, cfg.Server.Listen, pm.Handler())
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func runDiscover() {
	n := 0
	err := net.Browse(2*time.Second, func(addr string) {
		n++
		fmt.Printf("ws://%s%s\n", addr, net.Path)
	})
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
	if n == 0 {
		fmt.Println("No LocalCanvas servers found.")
	}
}
