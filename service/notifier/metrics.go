package notifier

import (
	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/metrics"
	"github.com/x-xyz/escrow/domain/listing"
)

type metricsSubscriber struct {
	met metrics.Service
}

// NewMetricsSubscriber counts committed events per type and records settlement amounts
func NewMetricsSubscriber() listing.Subscriber {
	return &metricsSubscriber{met: metrics.New("market")}
}

func (m *metricsSubscriber) Name() string {
	return "metrics"
}

func (m *metricsSubscriber) Handle(c ctx.Ctx, e listing.Event) error {
	m.met.BumpSum("event", 1, "type", string(e.Type))

	switch e.Type {
	case listing.EventSold, listing.EventAuctionEnded, listing.EventBidPlaced:
		v, _ := e.Price.Float64()
		m.met.BumpHistogram("amount", v, "type", string(e.Type))
	}
	return nil
}
