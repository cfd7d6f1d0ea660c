package usecase

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/log"
	"github.com/x-xyz/escrow/base/metrics"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/domain/listing"
)

type ListingUseCaseCfg struct {
	Repo            listing.Repo
	Locker          listing.Locker
	Transactor      domain.Transactor
	Custody         domain.CustodyService
	Fund            domain.FundService
	Fee             fee.UseCase
	Events          listing.EventUseCase
	Reconciliations listing.ReconciliationUseCase
	Alerter         listing.Alerter
	// Marketplace is the custody account holding listed assets
	Marketplace domain.Address
}

type impl struct {
	repo            listing.Repo
	locker          listing.Locker
	tx              domain.Transactor
	custody         domain.CustodyService
	fund            domain.FundService
	fee             fee.UseCase
	events          listing.EventUseCase
	reconciliations listing.ReconciliationUseCase
	alerter         listing.Alerter
	marketplace     domain.Address

	met     metrics.Service
	timeNow func() time.Time
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		repo:            cfg.Repo,
		locker:          cfg.Locker,
		tx:              cfg.Transactor,
		custody:         cfg.Custody,
		fund:            cfg.Fund,
		fee:             cfg.Fee,
		events:          cfg.Events,
		reconciliations: cfg.Reconciliations,
		alerter:         cfg.Alerter,
		marketplace:     cfg.Marketplace.ToLower(),
		met:             metrics.New("listing"),
		timeNow:         time.Now,
	}
}

// isAmount reports whether v is a positive whole number of the smallest unit
func isAmount(v decimal.Decimal) bool {
	return v.IsPositive() && v.Equal(v.Truncate(0))
}

func checkRequest(id listing.Id, caller domain.Address) (listing.Id, domain.Address, error) {
	if id.CollectionId.IsEmpty() || id.AssetId.IsEmpty() {
		return id, caller, xerrors.Errorf("empty listing key %s: %w", id, domain.ErrInvalidArgument)
	}
	if caller.IsEmpty() {
		return id, caller, xerrors.Errorf("empty caller: %w", domain.ErrInvalidArgument)
	}
	return id.Normalize(), caller.ToLower(), nil
}

// findActive returns nil when nothing is listed at id
func (im *impl) findActive(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	l, err := im.repo.FindOne(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}
	if !l.IsActive {
		return nil, nil
	}
	return l, nil
}

func (im *impl) List(c ctx.Ctx, id listing.Id, price decimal.Decimal, caller domain.Address) (*listing.Listing, error) {
	return im.create(c, "list", id, price, caller, false)
}

func (im *impl) ListForAuction(c ctx.Ctx, id listing.Id, startingPrice decimal.Decimal, caller domain.Address) (*listing.Listing, error) {
	return im.create(c, "listForAuction", id, startingPrice, caller, true)
}

func (im *impl) create(c ctx.Ctx, name string, id listing.Id, price decimal.Decimal, caller domain.Address, auction bool) (*listing.Listing, error) {
	id, caller, err := checkRequest(id, caller)
	if err != nil {
		return nil, err
	}
	if !isAmount(price) {
		return nil, xerrors.Errorf("price %s: %w", price, domain.ErrInvalidArgument)
	}

	var res *listing.Listing
	err = im.run(c, name, id, caller, func(c ctx.Ctx, o *op) error {
		existing, err := im.findActive(c, id)
		if err != nil {
			return err
		} else if existing != nil {
			return xerrors.Errorf("%s listed by %s: %w", id, existing.Seller, domain.ErrConflict)
		}

		if err := im.takeCustody(c, o, caller); err != nil {
			return err
		}

		now := im.timeNow()
		l := &listing.Listing{
			CollectionId: id.CollectionId,
			AssetId:      id.AssetId,
			Seller:       caller,
			Price:        price,
			IsActive:     true,
			IsAuction:    auction,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if auction {
			l.HighestBid = price
		}
		if err := im.repo.Insert(c, l); err != nil {
			c.WithField("err", err).Error("repo.Insert failed")
			return err
		}

		o.emit(listing.EventListed, l, "", price)
		res = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) PlaceBid(c ctx.Ctx, id listing.Id, caller domain.Address, amount decimal.Decimal) (*listing.Listing, error) {
	id, caller, err := checkRequest(id, caller)
	if err != nil {
		return nil, err
	}

	var res *listing.Listing
	err = im.run(c, "placeBid", id, caller, func(c ctx.Ctx, o *op) error {
		l, err := im.findActive(c, id)
		if err != nil {
			return err
		} else if l == nil || !l.IsAuction {
			return xerrors.Errorf("%s: %w", id, domain.ErrNotAuction)
		}

		if l.Seller.Equals(caller) {
			return xerrors.Errorf("seller cannot bid: %w", domain.ErrInvalidArgument)
		}
		if l.HighestBidder.Equals(caller) {
			return xerrors.Errorf("%s already leads: %w", caller, domain.ErrInvalidArgument)
		}
		if !isAmount(amount) {
			return xerrors.Errorf("bid %s: %w", amount, domain.ErrInvalidArgument)
		}
		if !amount.GreaterThan(l.HighestBid) {
			return xerrors.Errorf("bid %s, highest %s: %w", amount, l.HighestBid, domain.ErrBidTooLow)
		}

		if err := im.collect(c, o, caller, amount); err != nil {
			return err
		}
		if l.HasBids() {
			if err := im.refund(c, o, l.HighestBidder, l.HighestBid); err != nil {
				return err
			}
		}

		l.HighestBid = amount
		l.HighestBidder = caller
		l.Price = amount
		l.UpdatedAt = im.timeNow()
		if err := im.repo.Update(c, l); err != nil {
			c.WithField("err", err).Error("repo.Update failed")
			return err
		}

		o.emit(listing.EventBidPlaced, l, caller, amount)
		res = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) EndAuction(c ctx.Ctx, id listing.Id, caller domain.Address) (*listing.Settlement, error) {
	id, caller, err := checkRequest(id, caller)
	if err != nil {
		return nil, err
	}

	var res *listing.Settlement
	err = im.run(c, "endAuction", id, caller, func(c ctx.Ctx, o *op) error {
		l, err := im.findActive(c, id)
		if err != nil {
			return err
		} else if l == nil || !l.IsAuction {
			return xerrors.Errorf("%s: %w", id, domain.ErrNotAuction)
		}
		if !l.Seller.Equals(caller) {
			return xerrors.Errorf("%s is not the seller: %w", caller, domain.ErrUnauthorized)
		}
		if !l.HasBids() {
			return xerrors.Errorf("%s: %w", id, domain.ErrNoBids)
		}

		split, err := im.fee.Split(c, l.HighestBid)
		if err != nil {
			c.WithField("err", err).Error("fee.Split failed")
			return err
		}

		if err := im.releaseCustody(c, o, l.HighestBidder); err != nil {
			return err
		}
		im.payout(c, o, l.Seller, split)

		if err := im.repo.Remove(c, id); err != nil {
			c.WithField("err", err).Error("repo.Remove failed")
			return err
		}
		l.IsActive = false
		l.UpdatedAt = im.timeNow()

		o.emit(listing.EventAuctionEnded, l, l.HighestBidder, l.HighestBid)
		res = &listing.Settlement{Listing: *l, Buyer: l.HighestBidder, Split: *split}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Buy(c ctx.Ctx, id listing.Id, caller domain.Address, amount decimal.Decimal) (*listing.Settlement, error) {
	id, caller, err := checkRequest(id, caller)
	if err != nil {
		return nil, err
	}

	var res *listing.Settlement
	err = im.run(c, "buy", id, caller, func(c ctx.Ctx, o *op) error {
		l, err := im.findActive(c, id)
		if err != nil {
			return err
		} else if l == nil || l.IsAuction {
			return xerrors.Errorf("no fixed price listing at %s: %w", id, domain.ErrNotFound)
		}
		if l.Seller.Equals(caller) {
			return xerrors.Errorf("seller cannot buy: %w", domain.ErrInvalidArgument)
		}
		if !amount.Equal(l.Price) {
			return xerrors.Errorf("amount %s, price %s: %w", amount, l.Price, domain.ErrInvalidArgument)
		}

		split, err := im.fee.Split(c, l.Price)
		if err != nil {
			c.WithField("err", err).Error("fee.Split failed")
			return err
		}

		if err := im.collect(c, o, caller, l.Price); err != nil {
			return err
		}
		if err := im.releaseCustody(c, o, caller); err != nil {
			return err
		}
		im.payout(c, o, l.Seller, split)

		if err := im.repo.Remove(c, id); err != nil {
			c.WithField("err", err).Error("repo.Remove failed")
			return err
		}
		l.IsActive = false
		l.UpdatedAt = im.timeNow()

		o.emit(listing.EventSold, l, caller, l.Price)
		res = &listing.Settlement{Listing: *l, Buyer: caller, Split: *split}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) ChangePrice(c ctx.Ctx, id listing.Id, caller domain.Address, newPrice decimal.Decimal) (*listing.Listing, error) {
	id, caller, err := checkRequest(id, caller)
	if err != nil {
		return nil, err
	}

	var res *listing.Listing
	err = im.run(c, "changePrice", id, caller, func(c ctx.Ctx, o *op) error {
		l, err := im.findActive(c, id)
		if err != nil {
			return err
		} else if l == nil {
			return xerrors.Errorf("%s: %w", id, domain.ErrNotFound)
		}
		if !l.Seller.Equals(caller) {
			return xerrors.Errorf("%s is not the seller: %w", caller, domain.ErrUnauthorized)
		}
		if !isAmount(newPrice) {
			return xerrors.Errorf("price %s: %w", newPrice, domain.ErrInvalidArgument)
		}

		if l.IsAuction {
			if l.HasBids() {
				return xerrors.Errorf("auction %s has a leading bid: %w", id, domain.ErrInvalidArgument)
			}
			l.HighestBid = newPrice
		}
		l.Price = newPrice
		l.UpdatedAt = im.timeNow()
		if err := im.repo.Update(c, l); err != nil {
			c.WithField("err", err).Error("repo.Update failed")
			return err
		}

		o.emit(listing.EventPriceChanged, l, "", newPrice)
		res = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Unlist(c ctx.Ctx, id listing.Id, caller domain.Address) error {
	id, caller, err := checkRequest(id, caller)
	if err != nil {
		return err
	}

	return im.run(c, "unlist", id, caller, func(c ctx.Ctx, o *op) error {
		l, err := im.findActive(c, id)
		if err != nil {
			return err
		} else if l == nil {
			return xerrors.Errorf("%s: %w", id, domain.ErrNotFound)
		}
		if !l.Seller.Equals(caller) {
			return xerrors.Errorf("%s is not the seller: %w", caller, domain.ErrUnauthorized)
		}

		if err := im.releaseCustody(c, o, l.Seller); err != nil {
			return err
		}
		if l.HasBids() {
			if err := im.fund.Pay(c, l.HighestBidder, l.HighestBid); err != nil {
				c.WithFields(log.Fields{"err": err, "to": l.HighestBidder, "amount": l.HighestBid}).Error("fund.Pay refund failed")
				o.owe(listing.ReasonRefundUnpaid, l.HighestBidder, l.HighestBid,
					xerrors.Errorf("refund %s to %s: %v: %w", l.HighestBid, l.HighestBidder, err, domain.ErrRefundFailed))
			} else {
				o.step("refund %s to %s", l.HighestBid, l.HighestBidder)
			}
		}

		if err := im.repo.Remove(c, id); err != nil {
			c.WithField("err", err).Error("repo.Remove failed")
			return err
		}

		o.emit(listing.EventUnlisted, l, "", decimal.Zero)
		return nil
	})
}

func (im *impl) Get(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	id = id.Normalize()
	l, err := im.findActive(c, id)
	if err != nil {
		return nil, err
	} else if l == nil {
		return nil, xerrors.Errorf("%s: %w", id, domain.ErrNotFound)
	}
	return l, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}
