package listing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
)

// Listing is an asset held in marketplace custody, offered at a fixed price or by auction
type Listing struct {
	CollectionId domain.Address  `json:"collectionId" bson:"collectionId"`
	AssetId      domain.TokenId  `json:"assetId" bson:"assetId"`
	Seller       domain.Address  `json:"seller" bson:"seller"`
	Price        decimal.Decimal `json:"price" bson:"price"`
	IsActive     bool            `json:"isActive" bson:"isActive"`
	IsAuction    bool            `json:"isAuction" bson:"isAuction"`
	// HighestBid starts at the starting price of an auction
	HighestBid decimal.Decimal `json:"highestBid" bson:"highestBid"`
	// HighestBidder is empty until the first bid
	HighestBidder domain.Address `json:"highestBidder,omitempty" bson:"highestBidder,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) ToId() Id {
	return Id{CollectionId: l.CollectionId, AssetId: l.AssetId}
}

func (l *Listing) HasBids() bool {
	return l.IsAuction && !l.HighestBidder.IsEmpty()
}

// Id is the listing key
type Id struct {
	CollectionId domain.Address `json:"collectionId" bson:"collectionId" param:"collection"`
	AssetId      domain.TokenId `json:"assetId" bson:"assetId" param:"asset"`
}

func (id Id) String() string {
	return fmt.Sprintf("%s/%s", id.CollectionId, id.AssetId)
}

func (id Id) Normalize() Id {
	return Id{CollectionId: id.CollectionId.ToLower(), AssetId: id.AssetId}
}

// Settlement describes a finished sale or auction
type Settlement struct {
	Listing Listing        `json:"listing"`
	Buyer   domain.Address `json:"buyer"`
	Split   fee.Split      `json:"split"`
}

type FindAllOptions struct {
	SortBy       *string
	SortDir      *domain.SortDir
	Offset       *int32
	Limit        *int32
	Seller       *domain.Address `bson:"seller"`
	CollectionId *domain.Address `bson:"collectionId"`
	IsAuction    *bool           `bson:"isAuction"`
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		s := seller.ToLower()
		options.Seller = &s
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		c := collection.ToLower()
		options.CollectionId = &c
		return nil
	}
}

func WithAuction(isAuction bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IsAuction = &isAuction
		return nil
	}
}

func WithSort(sortBy string, sortDir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortBy
		options.SortDir = &sortDir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrInvalidArgument
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// Repo is the listing store, an absent record means nothing is listed
type Repo interface {
	FindOne(c ctx.Ctx, id Id) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	// Insert fails with domain.ErrConflict when a listing exists for the key
	Insert(c ctx.Ctx, l *Listing) error
	// Update fails with domain.ErrNotFound when no listing exists for the key
	Update(c ctx.Ctx, l *Listing) error
	Remove(c ctx.Ctx, id Id) error
}

// Locker guards a listing key for the whole duration of one operation
type Locker interface {
	// Lock fails fast with domain.ErrOperationInProgress when the key is held
	Lock(c ctx.Ctx, id Id) (unlock func(), err error)
}

// UseCase is the listing lifecycle controller, caller is always explicit
type UseCase interface {
	List(c ctx.Ctx, id Id, price decimal.Decimal, caller domain.Address) (*Listing, error)
	ListForAuction(c ctx.Ctx, id Id, startingPrice decimal.Decimal, caller domain.Address) (*Listing, error)
	PlaceBid(c ctx.Ctx, id Id, caller domain.Address, amount decimal.Decimal) (*Listing, error)
	EndAuction(c ctx.Ctx, id Id, caller domain.Address) (*Settlement, error)
	Buy(c ctx.Ctx, id Id, caller domain.Address, amount decimal.Decimal) (*Settlement, error)
	ChangePrice(c ctx.Ctx, id Id, caller domain.Address, newPrice decimal.Decimal) (*Listing, error)
	Unlist(c ctx.Ctx, id Id, caller domain.Address) error

	Get(c ctx.Ctx, id Id) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
}
