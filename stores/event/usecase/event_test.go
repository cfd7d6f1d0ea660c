package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain/listing"
	mListing "github.com/x-xyz/escrow/domain/listing/mocks"
	"github.com/x-xyz/escrow/stores/event/repository"
)

var mockCtx = ctx.Background()

type recorder struct {
	name string
	err  error
	boom bool

	mu   sync.Mutex
	seen []listing.EventType
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Handle(c ctx.Ctx, e listing.Event) error {
	if r.boom {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, e.Type)
	return r.err
}

type eventTestSuite struct {
	suite.Suite

	repo listing.EventRepo
	im   listing.EventUseCase
}

func TestEventSuite(t *testing.T) {
	suite.Run(t, new(eventTestSuite))
}

func (s *eventTestSuite) SetupTest() {
	s.repo = repository.NewMemory()
	s.im = New(&EventUseCaseCfg{Repo: s.repo, Workers: 4})
}

func (s *eventTestSuite) TearDownTest() {
	s.im.Close()
}

func (s *eventTestSuite) TestRecordFillsIdAndTime() {
	e := &listing.Event{Type: listing.EventListed, CollectionId: "0xc", AssetId: "1"}
	s.Require().NoError(s.im.Record(mockCtx, e))
	s.NotEmpty(e.EventId)
	s.False(e.Time.IsZero())

	res, err := s.im.FindAll(mockCtx, listing.EventWithCollection("0xc"))
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(e.EventId, res[0].EventId)
}

func (s *eventTestSuite) TestRecordRepoError() {
	repo := mListing.NewEventRepo(s.T())
	errRepo := errors.New("down")
	repo.On("Insert", mockCtx, mock.Anything).Return(errRepo).Once()

	im := New(&EventUseCaseCfg{Repo: repo})
	defer im.Close()
	s.Equal(errRepo, im.Record(mockCtx, &listing.Event{Type: listing.EventSold}))
}

func (s *eventTestSuite) TestPublishInOrder() {
	a := &recorder{name: "a"}
	b := &recorder{name: "b", err: errors.New("ignored")}
	s.im.Subscribe(a)
	s.im.Subscribe(b)

	s.im.Publish(mockCtx,
		listing.Event{Type: listing.EventBidPlaced},
		listing.Event{Type: listing.EventAuctionEnded},
	)
	s.im.Close()

	want := []listing.EventType{listing.EventBidPlaced, listing.EventAuctionEnded}
	s.Equal(want, a.seen)
	s.Equal(want, b.seen)
}

func (s *eventTestSuite) TestPublishSurvivesPanic() {
	bad := &recorder{name: "bad", boom: true}
	good := &recorder{name: "good"}
	s.im.Subscribe(bad)
	s.im.Subscribe(good)

	s.im.Publish(mockCtx, listing.Event{Type: listing.EventSold})
	s.im.Close()

	s.Equal([]listing.EventType{listing.EventSold}, good.seen)
}

func (s *eventTestSuite) TestPublishNothing() {
	r := &recorder{name: "r"}
	s.im.Subscribe(r)
	s.im.Publish(mockCtx)
	s.im.Close()
	s.Empty(r.seen)
}
