package repository

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/database/mongoclient"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	"github.com/x-xyz/escrow/service/query"
)

var mockCtx = ctx.Background()

func seed(req *require.Assertions, repo listing.ReconciliationRepo) time.Time {
	now := time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		req.NoError(repo.Insert(mockCtx, &listing.Reconciliation{
			ReconciliationId: id,
			Operation:        "Buy",
			CollectionId:     "0xc",
			AssetId:          "1",
			Payee:            "0xseller",
			Amount:           decimal.NewFromInt(980),
			Reason:           listing.ReasonProceedsUnpaid,
			CreatedAt:        now.Add(time.Duration(i) * time.Minute),
		}))
	}
	return now
}

func ids(recs []*listing.Reconciliation) []string {
	res := []string{}
	for _, r := range recs {
		res = append(res, r.ReconciliationId)
	}
	return res
}

func testRepo(t *testing.T, repo listing.ReconciliationRepo) {
	req := require.New(t)
	now := seed(req, repo)

	r, err := repo.FindOne(mockCtx, "b")
	req.NoError(err)
	req.Equal(listing.ReasonProceedsUnpaid, r.Reason)
	req.True(decimal.NewFromInt(980).Equal(r.Amount))

	_, err = repo.FindOne(mockCtx, "x")
	req.ErrorIs(err, domain.ErrNotFound)

	resolved, by, at := true, domain.Address("0xadmin"), now.Add(time.Hour)
	req.NoError(repo.Update(mockCtx, "b", listing.ReconciliationPatchable{Resolved: &resolved, ResolvedBy: &by, ResolvedAt: &at}))
	req.ErrorIs(repo.Update(mockCtx, "x", listing.ReconciliationPatchable{Resolved: &resolved}), domain.ErrNotFound)

	r, err = repo.FindOne(mockCtx, "b")
	req.NoError(err)
	req.True(r.Resolved)
	req.Equal(by, r.ResolvedBy)
	req.True(at.Equal(*r.ResolvedAt))

	all, err := repo.FindAll(mockCtx)
	req.NoError(err)
	req.Equal([]string{"c", "b", "a"}, ids(all))

	open, err := repo.FindAll(mockCtx, listing.ReconciliationWithResolved(false))
	req.NoError(err)
	req.Equal([]string{"c", "a"}, ids(open))

	paged, err := repo.FindAll(mockCtx, listing.ReconciliationWithPagination(1, 1))
	req.NoError(err)
	req.Equal([]string{"b"}, ids(paged))
}

func TestMemory(t *testing.T) {
	testRepo(t, NewMemory())
}

func TestMongo(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}

	client := mongoclient.MustConnectMongoClient(os.Getenv("MONGO_URI"), "admin", "testdb", false, true, 1)
	require.NoError(t, client.DB().Collection(string(domain.TableReconciliations)).Drop(mockCtx))
	q := query.New(client, false)
	require.NoError(t, EnsureIndexes(mockCtx, q))

	testRepo(t, New(q))
}
