package appeals

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// discordEpoch es el epoch de los snowflakes de Discord (ms)
const discordEpoch = 1420070400000

// SnowflakeTime derives the creation time encoded in a Discord snowflake id.
func SnowflakeTime(id string) time.Time {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}
	}
	ms := int64(n>>22) + discordEpoch
	return time.UnixMilli(ms)
}

// DiscordPlatform implementa Platform sobre una sesión de discordgo
type DiscordPlatform struct {
	Session *discordgo.Session
}

func (p *DiscordPlatform) GuildSnapshot(guildID string) (GuildSnapshot, error) {
	guild, err := p.Session.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = p.Session.Guild(guildID)
		if err != nil {
			return GuildSnapshot{}, err
		}
	}
	return GuildSnapshot{
		ID:                guild.ID,
		Name:              guild.Name,
		MemberCount:       guild.MemberCount,
		OwnerID:           guild.OwnerID,
		IconURL:           guild.IconURL("256"),
		CreatedAt:         SnowflakeTime(guild.ID),
		VerificationLevel: int(guild.VerificationLevel),
	}, nil
}

func (p *DiscordPlatform) MemberTimedOut(guildID, userID string) (bool, error) {
	member, err := p.Session.GuildMember(guildID, userID)
	if err != nil {
		return false, err
	}
	until := member.CommunicationDisabledUntil
	return until != nil && until.After(time.Now()), nil
}

func (p *DiscordPlatform) RemoveTimeout(guildID, userID string) error {
	return p.Session.GuildMemberTimeout(guildID, userID, nil)
}

func (p *DiscordPlatform) HasModPermission(guildID, userID string) (bool, error) {
	member, err := p.Session.GuildMember(guildID, userID)
	if err != nil {
		return false, err
	}
	guild, err := p.Session.State.Guild(guildID)
	if err == nil && guild != nil && guild.OwnerID == userID {
		return true, nil
	}
	for _, roleID := range member.Roles {
		role, err := p.Session.State.Role(guildID, roleID)
		if err != nil || role == nil {
			continue
		}
		if role.Permissions&(discordgo.PermissionModerateMembers|discordgo.PermissionAdministrator) != 0 {
			return true, nil
		}
	}
	return false, nil
}

func (p *DiscordPlatform) SendEmbed(channelID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	msg, err := p.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (p *DiscordPlatform) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	_, err := p.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	return err
}

func (p *DiscordPlatform) SendDM(userID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	channel, err := p.Session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = p.Session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	return err
}

// MetaFromInteraction builds the gate view of an inbound interaction. The
// creation instant comes from the interaction snowflake.
func MetaFromInteraction(i *discordgo.InteractionCreate) InteractionMeta {
	meta := InteractionMeta{
		ID:        i.ID,
		GuildID:   i.GuildID,
		CreatedAt: SnowflakeTime(i.ID),
		Repliable: true,
	}
	if i.Member != nil && i.Member.User != nil {
		meta.ActorID = i.Member.User.ID
	} else if i.User != nil {
		meta.ActorID = i.User.ID
	}
	if i.Message != nil {
		meta.ChannelID = i.Message.ChannelID
		meta.MessageID = i.Message.ID
		if len(i.Message.Embeds) > 0 {
			meta.MessageEmbed = i.Message.Embeds[0]
			meta.MessageTitle = i.Message.Embeds[0].Title
		}
	}
	return meta
}

// InteractionResponder implementa Responder sobre la interacción en curso
type InteractionResponder struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

func (r *InteractionResponder) ReplyEphemeral(content string) error {
	return r.Session.InteractionRespond(r.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (r *InteractionResponder) ReplyEphemeralEmbed(embed *discordgo.MessageEmbed) error {
	return r.Session.InteractionRespond(r.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (r *InteractionResponder) ShowModal(data *discordgo.InteractionResponseData) error {
	return r.Session.InteractionRespond(r.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
}
