package commands

import (
	"github.com/bwmarrin/discordgo"
)

// Colors for embeds
const (
	ColorPrimary = 0x5865F2 // Discord Blurple
	ColorSuccess = 0x57F287 // Green
	ColorError   = 0xED4245 // Red
	ColorInfo    = 0x3498DB // Blue
)

// Reply is the rendered answer to one command
type Reply struct {
	Content   string
	Embed     *discordgo.MessageEmbed
	Ephemeral bool

	// listing replies replace the guild's previous listing message
	listing bool
}

// successReply wraps a message in a green embed
func successReply(message string) Reply {
	return Reply{Embed: NewEmbed().Description("✅ " + message).Color(ColorSuccess).Build()}
}

// errorReply wraps a message in a red embed only the caller sees
func errorReply(message string) Reply {
	return Reply{
		Embed:     NewEmbed().Description("❌ " + message).Color(ColorError).Build(),
		Ephemeral: true,
	}
}

// infoReply wraps a message in a blue embed only the caller sees
func infoReply(message string) Reply {
	return Reply{
		Embed:     NewEmbed().Description(message).Color(ColorInfo).Build(),
		Ephemeral: true,
	}
}

// respondReply sends a reply as the interaction response
func respondReply(s *discordgo.Session, i *discordgo.InteractionCreate, reply Reply) error {
	data := &discordgo.InteractionResponseData{
		Content: reply.Content,
	}
	if reply.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{reply.Embed}
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// EmbedBuilder helps build consistent embeds
type EmbedBuilder struct {
	embed *discordgo.MessageEmbed
}

// NewEmbed creates a new embed builder
func NewEmbed() *EmbedBuilder {
	return &EmbedBuilder{
		embed: &discordgo.MessageEmbed{
			Color: ColorPrimary,
		},
	}
}

// Title sets the embed title
func (b *EmbedBuilder) Title(title string) *EmbedBuilder {
	b.embed.Title = title
	return b
}

// Description sets the embed description
func (b *EmbedBuilder) Description(desc string) *EmbedBuilder {
	b.embed.Description = desc
	return b
}

// Color sets the embed color
func (b *EmbedBuilder) Color(color int) *EmbedBuilder {
	b.embed.Color = color
	return b
}

// Footer sets the footer text
func (b *EmbedBuilder) Footer(text string) *EmbedBuilder {
	b.embed.Footer = &discordgo.MessageEmbedFooter{Text: text}
	return b
}

// Build returns the built embed
func (b *EmbedBuilder) Build() *discordgo.MessageEmbed {
	return b.embed
}
