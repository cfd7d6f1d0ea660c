package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

type EventType string

const (
	EventListed       EventType = "Listed"
	EventPriceChanged EventType = "PriceChanged"
	EventUnlisted     EventType = "Unlisted"
	EventBidPlaced    EventType = "BidPlaced"
	EventAuctionEnded EventType = "AuctionEnded"
	EventSold         EventType = "Sold"
)

// Event is one listing state transition, appended in the same transaction as the change
type Event struct {
	EventId      string         `json:"eventId" bson:"eventId"`
	Type         EventType      `json:"type" bson:"type"`
	CollectionId domain.Address `json:"collectionId" bson:"collectionId"`
	AssetId      domain.TokenId `json:"assetId" bson:"assetId"`
	Seller       domain.Address `json:"seller" bson:"seller"`
	// Counterparty is the bidder of BidPlaced, the winner of AuctionEnded and the buyer of Sold
	Counterparty domain.Address `json:"counterparty,omitempty" bson:"counterparty,omitempty"`
	// Price is the listed price, new price, bid amount or settlement price
	Price decimal.Decimal `json:"price" bson:"price"`
	Time  time.Time       `json:"time" bson:"time"`
}

type EventFindAllOptions struct {
	Offset       *int32
	Limit        *int32
	CollectionId *domain.Address `bson:"collectionId"`
	AssetId      *domain.TokenId `bson:"assetId"`
	Type         *EventType      `bson:"type"`
}

type EventFindAllOptionsFunc func(*EventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (EventFindAllOptions, error) {
	res := EventFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func EventWithCollection(collection domain.Address) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		c := collection.ToLower()
		options.CollectionId = &c
		return nil
	}
}

func EventWithAsset(asset domain.TokenId) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.AssetId = &asset
		return nil
	}
}

func EventWithType(typ EventType) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		switch typ {
		case EventListed, EventPriceChanged, EventUnlisted, EventBidPlaced, EventAuctionEnded, EventSold:
		default:
			return domain.ErrInvalidArgument
		}
		options.Type = &typ
		return nil
	}
}

func EventWithPagination(offset int32, limit int32) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrInvalidArgument
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// EventRepo is the append-only event log
type EventRepo interface {
	Insert(c ctx.Ctx, e *Event) error
	FindAll(c ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}

// Subscriber receives committed events, a returned error is logged and dropped
type Subscriber interface {
	Name() string
	Handle(c ctx.Ctx, e Event) error
}

type EventUseCase interface {
	// Record appends e to the log, call it inside the operation's transaction
	Record(c ctx.Ctx, e *Event) error
	// Publish fans committed events out to the subscribers
	Publish(c ctx.Ctx, events ...Event)
	Subscribe(s Subscriber)
	FindAll(c ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
	// Close waits for queued deliveries
	Close()
}
