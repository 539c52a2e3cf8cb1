// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod, config, etc.)
package commands

import (
	"github.com/AmparoStudios/AmparoBotGo/internal/commands/config"
	"github.com/AmparoStudios/AmparoBotGo/internal/commands/dev"
	"github.com/AmparoStudios/AmparoBotGo/internal/commands/mod"
	"github.com/AmparoStudios/AmparoBotGo/internal/commands/social"
	"github.com/AmparoStudios/AmparoBotGo/internal/commands/utils"
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
// Add your command registration calls here
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands
	utils.RegisterUtilsCommands(client)

	// Moderation commands (/mod warn, /mod warns, /mod mute, ...)
	mod.RegisterModCommands(client)

	// Per-guild configuration (/config modlog)
	config.RegisterConfigCommands(client)

	// Community commands (/social nivel, /social top, /social nota)
	social.RegisterSocialCommands(client)

	// Developer commands, only registered in the dev guild
	dev.Register(client)
}
