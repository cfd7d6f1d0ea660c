package repository

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrow/base/database/mongoclient"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/query"
)

// listingSuite runs against MONGO_URI, e.g. mongodb://localhost:27017/?replicaSet=rs0
type listingSuite struct {
	suite.Suite
	q  query.Mongo
	im listing.Repo
}

func TestListingSuite(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}
	suite.Run(t, new(listingSuite))
}

func (s *listingSuite) SetupTest() {
	client := mongoclient.MustConnectMongoClient(os.Getenv("MONGO_URI"), "admin", "testdb", false, true, 1)
	s.Require().NoError(client.DB().Collection(string(domain.TableListings)).Drop(mockCtx))
	s.q = query.New(client, false)
	s.Require().NoError(EnsureIndexes(mockCtx, s.q))
	s.im = New(s.q)
}

func (s *listingSuite) TestCRUD() {
	l := mockListing("0xc", "1", "0xa", true, 0)
	l.HighestBid = decimal.NewFromInt(100)
	s.Require().NoError(s.im.Insert(mockCtx, l))
	s.ErrorIs(s.im.Insert(mockCtx, l), domain.ErrConflict)

	res, err := s.im.FindOne(mockCtx, l.ToId())
	s.Require().NoError(err)
	s.Equal(l.Seller, res.Seller)
	s.True(l.HighestBid.Equal(res.HighestBid))
	s.True(res.HighestBidder.IsEmpty())

	l.HighestBid = decimal.NewFromInt(150)
	l.HighestBidder = "0xb"
	s.Require().NoError(s.im.Update(mockCtx, l))
	res, err = s.im.FindOne(mockCtx, l.ToId())
	s.Require().NoError(err)
	s.Equal(domain.Address("0xb"), res.HighestBidder)

	all, err := s.im.FindAll(mockCtx, listing.WithSeller("0xa"), listing.WithAuction(true))
	s.Require().NoError(err)
	s.Len(all, 1)

	s.Require().NoError(s.im.Remove(mockCtx, l.ToId()))
	_, err = s.im.FindOne(mockCtx, l.ToId())
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.im.Remove(mockCtx, l.ToId()), domain.ErrNotFound)
}
