package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	mFee "github.com/x-xyz/escrow/domain/fee/mocks"
	mDomain "github.com/x-xyz/escrow/domain/mocks"
	"github.com/x-xyz/escrow/service/cache"
	"github.com/x-xyz/escrow/service/cache/provider/primitive"
	feeRepository "github.com/x-xyz/escrow/stores/fee/repository"
)

var (
	mockCtx = ctx.Background()
	admin   = domain.Address("0xadmin")
	mallory = domain.Address("0xmallory")
	now     = time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)
)

type feeSuite struct {
	suite.Suite
	repo *mFee.Repo
	auth *mDomain.Authorizer
	im   *impl
}

func TestFeeSuite(t *testing.T) {
	suite.Run(t, new(feeSuite))
}

func (s *feeSuite) SetupTest() {
	s.repo = mFee.NewRepo(s.T())
	s.auth = mDomain.NewAuthorizer(s.T())
	s.auth.On("IsAdministrator", mock.Anything, admin).Return(true).Maybe()
	s.auth.On("IsAdministrator", mock.Anything, mallory).Return(false).Maybe()

	s.im = New(&FeeUseCaseCfg{
		Repo:       s.repo,
		Authorizer: s.auth,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "fee",
			Cache: primitive.NewPrimitive("fee", 1),
		}),
		DefaultRate: 2,
		Recipient:   "0xADMIN",
	}).(*impl)
	s.im.timeNow = func() time.Time { return now }
}

func (s *feeSuite) TestDefaultRate() {
	s.repo.On("Get", mock.Anything).Return(nil, domain.ErrNotFound).Once()

	rate, err := s.im.GetFeeRate(mockCtx)
	s.NoError(err)
	s.Equal(fee.Rate(2), rate)

	// cached
	rate, err = s.im.GetFeeRate(mockCtx)
	s.NoError(err)
	s.Equal(fee.Rate(2), rate)
}

func (s *feeSuite) TestRepoError() {
	errDB := errors.New("db down")
	s.repo.On("Get", mock.Anything).Return(nil, errDB).Once()

	_, err := s.im.GetFeeRate(mockCtx)
	s.Equal(errDB, err)
}

func (s *feeSuite) TestSetFeeRate() {
	s.repo.On("Get", mock.Anything).Return(&fee.Config{Rate: 2}, nil).Once()
	rate, err := s.im.GetFeeRate(mockCtx)
	s.NoError(err)
	s.Equal(fee.Rate(2), rate)

	s.repo.On("Set", mock.Anything, &fee.Config{Rate: 99, UpdatedBy: admin, UpdatedAt: now}).Return(nil).Once()
	s.NoError(s.im.SetFeeRate(mockCtx, admin, 99))

	// the cached rate was dropped
	s.repo.On("Get", mock.Anything).Return(&fee.Config{Rate: 99}, nil).Once()
	rate, err = s.im.GetFeeRate(mockCtx)
	s.NoError(err)
	s.Equal(fee.Rate(99), rate)
}

func (s *feeSuite) TestSetFeeRateRejected() {
	cases := []struct {
		name   string
		caller domain.Address
		rate   fee.Rate
		err    error
	}{
		{"100 is out of range", admin, 100, domain.ErrInvalidConfiguration},
		{"150 is out of range", admin, 150, domain.ErrInvalidConfiguration},
		{"negative", admin, -1, domain.ErrInvalidConfiguration},
		{"non administrator", mallory, 99, domain.ErrUnauthorized},
		{"non administrator with invalid rate", mallory, 150, domain.ErrUnauthorized},
	}

	for _, c := range cases {
		s.ErrorIs(s.im.SetFeeRate(mockCtx, c.caller, c.rate), c.err, c.name)
	}
	s.repo.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything)
}

func (s *feeSuite) TestSplit() {
	s.repo.On("Get", mock.Anything).Return(&fee.Config{Rate: 2}, nil).Once()

	split, err := s.im.Split(mockCtx, decimal.NewFromInt(1000))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(20).Equal(split.Fee))
	s.True(decimal.NewFromInt(980).Equal(split.Proceeds))
	s.Equal(fee.Rate(2), split.Rate)
	s.Equal(admin, split.Recipient)
}

func TestSetFeeRateAcrossInstances(t *testing.T) {
	auth := mDomain.NewAuthorizer(t)
	auth.On("IsAdministrator", mock.Anything, admin).Return(true)

	// two processes on one store and one shared cache
	repo := feeRepository.NewMemory()
	shared := primitive.NewPrimitive("fee", 1)
	newInstance := func() fee.UseCase {
		return New(&FeeUseCaseCfg{
			Repo:        repo,
			Authorizer:  auth,
			Cache:       cache.New(cache.ServiceConfig{Ttl: time.Minute, Pfx: "fee", Cache: shared}),
			DefaultRate: 2,
			Recipient:   admin,
		})
	}
	a, b := newInstance(), newInstance()

	split, err := b.Split(mockCtx, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.Equal(t, fee.Rate(2), split.Rate)

	require.NoError(t, a.SetFeeRate(mockCtx, admin, 10))

	split, err = b.Split(mockCtx, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.Equal(t, fee.Rate(10), split.Rate)
	require.True(t, decimal.NewFromInt(100).Equal(split.Fee))
}
