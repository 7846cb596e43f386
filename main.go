package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"filedeck/internal/api"
	"filedeck/internal/config"
	"filedeck/internal/eventbus"
	"filedeck/internal/ui"
	"filedeck/internal/ui/services/navigation"
)

func main() {
	var serverURL string
	var configPath string
	var password string
	flag.StringVar(&serverURL, "server", "", "File server URL (overrides config)")
	flag.StringVar(&serverURL, "s", "", "File server URL (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&password, "password", "", "Server password (overrides config)")
	flag.Parse()

	// Positional argument also works: filedeck http://host:8080
	if serverURL == "" && flag.NArg() > 0 {
		serverURL = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("filedeck.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	var cfg *config.Config
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if password != "" {
		cfg.Password = password
	}

	// Create the API client and authenticate if the server requires it
	client, err := api.NewClient(cfg.ServerURL)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if status, err := client.Status(ctx); err == nil && status.AuthRequired && !status.Authenticated {
		if cfg.Password == "" {
			fmt.Println("Server requires authentication; set a password in the config or pass --password")
			os.Exit(1)
		}
		if err := client.Login(ctx, cfg.Password); err != nil {
			fmt.Printf("Login failed: %v\n", err)
			os.Exit(1)
		}
	}

	// Build the navigation store with persisted UI preferences
	nav := navigation.NewService(bus)
	nav.SetLimits(cfg.PageSize, 0)
	nav.SetSidebarWidth(cfg.UISettings.SidebarWidth)
	nav.SetViewMode(cfg.UISettings.ViewMode)

	// Persist UI preference changes as they happen
	saveConfig := func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			cfg.UISettings.SidebarWidth = event.SidebarWidth
			cfg.UISettings.ViewMode = event.ViewMode
			if err := configSvc.Save(cfg); err != nil {
				log.Printf("Failed to save config: %v", err)
			}
		}
	}
	bus.Subscribe(eventbus.EventConfigChanged, saveConfig)

	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(bus, client, nav)

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward bus events into the Update loop. The UI-originated events the
	// model already applied synchronously are not echoed back.
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventSelectionClearRequest, forward)
	bus.Subscribe(eventbus.EventToast, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventIndexStatusChanged, forward)
	bus.Subscribe(eventbus.EventUploadProgress, forward)

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}
