package notifier

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/domain/listing"
)

type Config struct {
	DiscordBotKey string
	// SalesChannelId receives AuctionEnded and Sold, empty disables them
	SalesChannelId string
	// AlertChannelId receives fatal inconsistencies
	AlertChannelId string
	// AssetUrl formats a link from the collection and the asset id
	AssetUrl string
}

type sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

// Discord posts settlements and incidents to discord channels
type Discord struct {
	config  Config
	discord sender
}

func NewDiscord(config Config) (*Discord, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", config.DiscordBotKey))
	if err != nil {
		return nil, err
	}
	return &Discord{config, discord}, nil
}

func (d *Discord) Name() string {
	return "discord"
}

// Handle posts AuctionEnded and Sold, other events are ignored
func (d *Discord) Handle(c ctx.Ctx, e listing.Event) error {
	if d.config.SalesChannelId == "" {
		return nil
	}

	var title string
	switch e.Type {
	case listing.EventSold:
		title = "Item sold!"
	case listing.EventAuctionEnded:
		title = "Auction ended!"
	default:
		return nil
	}

	msg := &discordgo.MessageEmbed{
		Title:       title,
		Description: d.assetUrl(e.CollectionId.ToLowerStr(), string(e.AssetId)),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(e.Seller)},
			{Name: "Buyer", Value: string(e.Counterparty)},
			{Name: "Price", Value: e.Price.String()},
		},
		Timestamp: e.Time.UTC().Format("2006-01-02T15:04:05Z"),
	}

	if _, err := d.discord.ChannelMessageSendEmbed(d.config.SalesChannelId, msg); err != nil {
		c.WithFields(log.Fields{"err": err, "event": e.EventId}).Warn("discord.ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

// Alert posts an incident with every owed transfer
func (d *Discord) Alert(c ctx.Ctx, incident listing.Incident) {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Operation", Value: incident.Operation, Inline: true},
		{Name: "Listing", Value: incident.Id.String(), Inline: true},
		{Name: "Cause", Value: fmt.Sprint(incident.Cause)},
	}
	for _, r := range incident.Reconciliations {
		owed := string(r.Reason)
		if !r.Payee.IsEmpty() {
			owed = fmt.Sprintf("%s %s to %s", r.Reason, r.Amount, r.Payee)
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: r.ReconciliationId, Value: owed})
	}

	msg := &discordgo.MessageEmbed{
		Title:       "Fatal inconsistency",
		Description: d.assetUrl(incident.Id.CollectionId.ToLowerStr(), string(incident.Id.AssetId)),
		Color:       0xd0021b,
		Fields:      fields,
	}

	if _, err := d.discord.ChannelMessageSendEmbed(d.config.AlertChannelId, msg); err != nil {
		c.WithFields(log.Fields{"err": err, "incident": incident.Operation}).Error("discord.ChannelMessageSendEmbed failed")
	}
}

func (d *Discord) assetUrl(collection, asset string) string {
	if d.config.AssetUrl == "" || strings.Count(d.config.AssetUrl, "%s") != 2 {
		return collection + "/" + asset
	}
	return fmt.Sprintf(d.config.AssetUrl, collection, asset)
}
