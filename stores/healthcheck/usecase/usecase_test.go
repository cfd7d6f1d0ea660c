package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
	mHealthcheck "github.com/x-xyz/escrow/domain/healthcheck/mocks"
	"github.com/x-xyz/escrow/stores/healthcheck/repository"
)

func TestCheck(t *testing.T) {
	req := require.New(t)

	repo := mHealthcheck.NewHealthCheckRepo(t)
	errPing := errors.New("no reachable servers")
	repo.On("Ping", mock.Anything).Return(nil).Once()
	repo.On("Ping", mock.Anything).Return(errPing).Once()

	im := New(repo)
	req.NoError(im.Check(ctx.Background()))
	req.Equal(errPing, im.Check(ctx.Background()))
}

func TestCheckWithoutStores(t *testing.T) {
	require.NoError(t, New(repository.New(nil, nil)).Check(ctx.Background()))
}
