// Package config provides per-guild configuration commands under /config
package config

import (
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
)

// RegisterConfigCommands registers all configuration commands as /config subcommands
func RegisterConfigCommands(client *discord.ExtendedClient) {
	modLogCmd := createModLogCommand()

	configGroup := client.CommandHandler.BuildCommandGroup(
		"config",
		"Configuración del servidor",
		modLogCmd,
	)

	client.CommandHandler.AddGlobalCommand(configGroup)
}
