package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/fee"
	"github.com/x-xyz/escrow/domain/listing"
)

const (
	admin = domain.Address("0x0000000000000000000000000000000000000002")
	alice = domain.Address("0x00000000000000000000000000000000000a11ce")
)

const configYaml = `
store:
  driver: mongo
marketplace:
  address: "0x0000000000000000000000000000000000000001"
admin:
  addresses:
    - "0x0000000000000000000000000000000000000002"
fee:
  defaultRate: 2
auth:
  jwtSecret: "secret"
`

type setupSuite struct {
	suite.Suite

	ctx    ctx.Ctx
	stores *Stores
}

func (s *setupSuite) SetupTest() {
	viper.Reset()
	s.ctx = ctx.Background()
	s.stores = nil

	file := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(file, []byte(configYaml), 0o600))
	s.T().Setenv("STORE_DRIVER", DriverMemory)
	s.Require().NoError(LoadConfig([]string{"--config", file}))
}

func (s *setupSuite) TearDownTest() {
	if s.stores != nil {
		s.stores.Close(s.ctx)
	}
	viper.Reset()
}

func TestSetup(t *testing.T) {
	suite.Run(t, new(setupSuite))
}

func (s *setupSuite) TestLoadConfig() {
	s.Equal(DriverMemory, viper.GetString("store.driver"))
	s.Equal("secret", viper.GetString("auth.jwtSecret"))
	s.Equal(int64(2), viper.GetInt64("fee.defaultRate"))
}

func (s *setupSuite) TestLoadConfigMissingFile() {
	err := LoadConfig([]string{"--config", filepath.Join(s.T().TempDir(), "missing.yaml")})
	s.Error(err)
}

func (s *setupSuite) TestNewMemory() {
	stores, err := New(s.ctx)
	s.Require().NoError(err)
	s.stores = stores

	s.Nil(stores.MongoClient)
	s.Nil(stores.RedisCache)
	s.Equal([]domain.Address{admin}, stores.Admins)
	s.Equal(admin, stores.FeeRecipient)

	rate, err := stores.Fee.GetFeeRate(s.ctx)
	s.Require().NoError(err)
	s.Equal(fee.Rate(2), rate)

	s.ErrorIs(stores.Fee.SetFeeRate(s.ctx, alice, 5), domain.ErrUnauthorized)
	s.Require().NoError(stores.Fee.SetFeeRate(s.ctx, admin, 5))
	rate, err = stores.Fee.GetFeeRate(s.ctx)
	s.Require().NoError(err)
	s.Equal(fee.Rate(5), rate)

	// the in-memory registry starts empty, nobody holds anything
	id := listing.Id{CollectionId: "0x0000000000000000000000000000000000000c01", AssetId: "1"}
	_, err = stores.Listings.List(s.ctx, id, decimal.NewFromInt(100), alice)
	s.ErrorIs(err, domain.ErrCustodyTransferFailed)

	ls, err := stores.Listings.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(ls)
}

func (s *setupSuite) TestFeeRecipientOverride() {
	viper.Set("admin.feeRecipient", "0x00000000000000000000000000000000000000FE")
	stores, err := New(s.ctx)
	s.Require().NoError(err)
	s.stores = stores

	s.Equal(domain.Address("0x00000000000000000000000000000000000000fe"), stores.FeeRecipient)
}

func (s *setupSuite) TestNewRejectsConfig() {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"unknown driver", "store.driver", "postgres"},
		{"no marketplace", "marketplace.address", ""},
		{"fee out of range", "fee.defaultRate", 100},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			viper.Set(tt.key, tt.value)
			defer viper.Set(tt.key, nil)
			_, err := New(s.ctx)
			s.ErrorIs(err, domain.ErrInvalidConfiguration)
		})
	}
}
