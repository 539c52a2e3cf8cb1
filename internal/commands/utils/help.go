package utils

import (
	"github.com/AmparoStudios/AmparoBotGo/pkg/discord"
	"github.com/AmparoStudios/AmparoBotGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de AmparoBot Go**\n\n" +
				"**Comandos disponibles:**\n" +
				"• `/utils ping` - Comprueba la latencia\n" +
				"• `/utils status` - Estado del bot\n" +
				"• `/utils stats` - Estadísticas del bot\n" +
				"• `/mod ban <usuario> <razón>` - Banea a un usuario\n" +
				"• `/mod kick <usuario> <razón>` - Expulsa a un usuario\n" +
				"• `/mod warn <usuario> <razón>` - Advierte a un usuario\n" +
				"• `/mod mute <usuario> <duración> <razón>` - Silencia a un usuario\n" +
				"• `/mod warns <usuario>` - Lista las advertencias\n" +
				"• `/mod removewarn <usuario> <id>` - Retira una advertencia\n" +
				"• `/mod clearwarns <usuario>` - Elimina el historial de advertencias\n" +
				"• `/config modlog <canal>` - Canal de moderación para apelaciones\n" +
				"• `/social nivel` - Tu nivel y XP\n" +
				"• `/social top` - Clasificación del servidor\n" +
				"• `/social nota <accion>` - Tus notas personales\n\n" +
				"⚖️ Si recibes una sanción, puedes apelarla con el botón **Apelar** del mensaje directo.",
		)
	}()
	return nil
}
