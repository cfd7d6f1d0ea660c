package repository

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/database/mongoclient"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/service/query"
)

var mockCtx = ctx.Background()

func testRepo(t *testing.T, repo fee.Repo) {
	req := require.New(t)

	_, err := repo.Get(mockCtx)
	req.ErrorIs(err, domain.ErrNotFound)

	at := time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)
	req.NoError(repo.Set(mockCtx, &fee.Config{Rate: 2, UpdatedBy: "0xadmin", UpdatedAt: at}))
	req.NoError(repo.Set(mockCtx, &fee.Config{Rate: 5, UpdatedBy: "0xadmin", UpdatedAt: at}))

	cfg, err := repo.Get(mockCtx)
	req.NoError(err)
	req.Equal(fee.Rate(5), cfg.Rate)
	req.Equal(domain.Address("0xadmin"), cfg.UpdatedBy)
	req.True(at.Equal(cfg.UpdatedAt))
}

func TestMemory(t *testing.T) {
	testRepo(t, NewMemory())
}

func TestMongo(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}
	client := mongoclient.MustConnectMongoClient(os.Getenv("MONGO_URI"), "admin", "testdb", false, true, 1)
	require.NoError(t, client.DB().Collection(string(domain.TableMarketConfig)).Drop(mockCtx))
	testRepo(t, New(query.New(client, false)))
}
