// Package main is the entry point for the AmparoBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AmparoStudios/AmparoBotGo/internal/appeals"
	"github.com/AmparoStudios/AmparoBotGo/internal/commands"
	"github.com/AmparoStudios/AmparoBotGo/internal/events"
	"github.com/AmparoStudios/AmparoBotGo/internal/levels"
	"github.com/AmparoStudios/AmparoBotGo/internal/modlog"
	"github.com/AmparoStudios/AmparoBotGo/internal/warnings"
	"github.com/AmparoStudios/AmparoBotGo/pkg/config"
	"github.com/AmparoStudios/AmparoBotGo/pkg/database"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
	"github.com/AmparoStudios/AmparoBotGo/pkg/mqtt"
	"github.com/AmparoStudios/AmparoBotGo/pkg/web"
)

// multiSink reparte los eventos del motor entre varios destinos
type multiSink []appeals.EventSink

func (m multiSink) Publish(event string, payload map[string]any) {
	for _, sink := range m {
		sink.Publish(event, payload)
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando AmparoBot Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		logger.Debug(fmt.Sprintf("Error connecting to database: %v", cfg.MongoDBURL), "Main")
		// Continue without database- it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)

		// Initialize blacklist cache at startup and start auto-refresh
		if err := database.InitBlacklistCache(); err != nil {
			logger.Warn(fmt.Sprintf("Error inicializando caché de blacklist: %v", err), "Main")
		}
		database.StartBlacklistCacheRefresh()
		defer database.StopBlacklistCacheRefresh()
	}

	// Domain services over the DataManagers
	warnStore := warnings.Init(warnings.NewMongoRepository())
	resolver := modlog.Init()
	audit := modlog.InitAudit()
	levels.Init()

	// Initialize MQTT
	mqttClientID := "amparobot"
	if !cfg.IsProd() {
		mqttClientID = "amparobot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	web.SetupAppealRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Appeal engine: store + platform + fan-out resolver + telemetry sinks
	appealEngine := appeals.Init(appeals.Deps{
		Store:    warnStore,
		Platform: &appeals.DiscordPlatform{Session: discordClient.Session},
		Resolver: resolver,
		Audit:    audit,
		Events:   multiSink{web.Hub(), mqtt.NewEventPublisher()},
		Feedback: appeals.NewFeedbackStore(appeals.NewMongoFeedbackRepo()),
	})
	defer appealEngine.Stop()

	// Register commands using the new commands package
	commands.RegisterAll(discordClient)

	// Register events using the new events package
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {

		}
	}(discordClient)

	logger.Success("AmparoBot Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando AmparoBot Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
