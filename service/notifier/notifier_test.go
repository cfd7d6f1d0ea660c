package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain/listing"
	mListing "github.com/x-xyz/escrow/domain/listing/mocks"
)

var mockCtx = ctx.Background()

type sent struct {
	channel string
	msg     *discordgo.MessageEmbed
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sent{channelID, embed})
	return &discordgo.Message{}, nil
}

func TestHandle(t *testing.T) {
	req := require.New(t)

	s := &fakeSender{}
	d := &Discord{Config{SalesChannelId: "sales", AssetUrl: "https://market.example/asset/%s/%s"}, s}
	req.Equal("discord", d.Name())

	e := listing.Event{
		Type:         listing.EventSold,
		CollectionId: "0xC",
		AssetId:      "1",
		Seller:       "0xseller",
		Counterparty: "0xbuyer",
		Price:        decimal.NewFromInt(1000),
		Time:         time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	req.NoError(d.Handle(mockCtx, e))
	req.NoError(d.Handle(mockCtx, listing.Event{Type: listing.EventBidPlaced}))

	req.Len(s.sent, 1)
	req.Equal("sales", s.sent[0].channel)
	req.Equal("Item sold!", s.sent[0].msg.Title)
	req.Equal("https://market.example/asset/0xc/1", s.sent[0].msg.Description)
	req.Equal("1000", s.sent[0].msg.Fields[2].Value)

	e.Type = listing.EventAuctionEnded
	req.NoError(d.Handle(mockCtx, e))
	req.Equal("Auction ended!", s.sent[1].msg.Title)

	s.err = errors.New("rate limited")
	req.Error(d.Handle(mockCtx, e))

	quiet := &Discord{Config{}, s}
	req.NoError(quiet.Handle(mockCtx, e))
}

func TestAlert(t *testing.T) {
	req := require.New(t)

	s := &fakeSender{}
	d := &Discord{Config{AlertChannelId: "ops"}, s}

	d.Alert(mockCtx, listing.Incident{
		Operation: "buy",
		Id:        listing.Id{CollectionId: "0xc", AssetId: "1"},
		Cause:     errors.New("rail down"),
		Reconciliations: []*listing.Reconciliation{
			{ReconciliationId: "r1", Reason: listing.ReasonProceedsUnpaid, Payee: "0xseller", Amount: decimal.NewFromInt(980)},
			{ReconciliationId: "r2", Reason: listing.ReasonCommitFailed},
		},
	})

	req.Len(s.sent, 1)
	req.Equal("ops", s.sent[0].channel)
	req.Equal("0xc/1", s.sent[0].msg.Description)
	fields := s.sent[0].msg.Fields
	req.Len(fields, 5)
	req.Equal("rail down", fields[2].Value)
	req.Equal("proceeds_unpaid 980 to 0xseller", fields[3].Value)
	req.Equal("commit_failed", fields[4].Value)
}

func TestMulti(t *testing.T) {
	a := mListing.NewAlerter(t)
	b := mListing.NewAlerter(t)
	incident := listing.Incident{Operation: "unlist"}
	a.On("Alert", mock.Anything, incident).Return().Once()
	b.On("Alert", mock.Anything, incident).Return().Once()

	Multi(NewLogAlerter(), a, b).Alert(mockCtx, incident)
}

func TestMetricsSubscriber(t *testing.T) {
	s := NewMetricsSubscriber()
	require.Equal(t, "metrics", s.Name())
	require.NoError(t, s.Handle(mockCtx, listing.Event{Type: listing.EventSold, Price: decimal.NewFromInt(5)}))
}
