// Package social provides community commands under /social
package social

import (
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
)

// RegisterSocialCommands registers all community commands as /social subcommands
func RegisterSocialCommands(client *discord.ExtendedClient) {
	levelCmd := createLevelCommand()
	topCmd := createTopCommand()
	noteCmd := createNoteCommand()

	socialGroup := client.CommandHandler.BuildCommandGroup(
		"social",
		"Comandos de comunidad",
		levelCmd,
		topCmd,
		noteCmd,
	)

	client.CommandHandler.AddGlobalCommand(socialGroup)
}
