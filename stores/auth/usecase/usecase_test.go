package usecase

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/ethereum"
	"github.com/x-xyz/escrow/domain"
)

const template = "sign in to the marketplace as %s at %d"

func newUsecase(now time.Time) *impl {
	im := New(&AuthUsecaseCfg{
		JwtSecret:          "jwt-secret",
		SigningMsgTemplate: template,
		TokenTtl:           24 * time.Hour,
		SignatureTtl:       5 * time.Minute,
	}).(*impl)
	im.timeNow = func() time.Time { return now }
	return im
}

func TestSignAndParseToken(t *testing.T) {
	c := ctx.Background()
	u := newUsecase(time.Now())

	tkn, err := u.SignToken(c, "My-Address")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(c, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "my-address", ads)

	// expired a day ago
	expired := mustSign(t, newUsecase(time.Now().Add(-48*time.Hour)), "0xa")
	_, err = u.ParseToken(c, expired)
	assert.Error(t, err)

	_, err = u.ParseToken(c, "garbage")
	assert.Error(t, err)
}

func mustSign(t *testing.T, u *impl, address domain.Address) string {
	tkn, err := u.SignToken(ctx.Background(), address)
	require.NoError(t, err)
	return tkn
}

func TestVerifySignature(t *testing.T) {
	c := ctx.Background()
	now := time.Unix(1659312000, 0)
	u := newUsecase(now)

	key, pub, err := ethereum.GenerateKey()
	require.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(*pub).Hex())

	sign := func(issuedAt time.Time) string {
		sig, err := ethereum.SignMsg([]byte(SigningMsg(template, address, issuedAt)), key)
		require.NoError(t, err)
		return hexutil.Encode(sig)
	}

	assert.NoError(t, u.VerifySignature(c, address, now.Add(-time.Minute), sign(now.Add(-time.Minute))))
	assert.ErrorIs(t, u.VerifySignature(c, address, now.Add(-time.Hour), sign(now.Add(-time.Hour))), domain.ErrUnauthorized)
	assert.ErrorIs(t, u.VerifySignature(c, address, now, sign(now.Add(-time.Minute))), domain.ErrUnauthorized)
	assert.ErrorIs(t, u.VerifySignature(c, "0x0000000000000000000000000000000000000001", now, sign(now)), domain.ErrUnauthorized)
	assert.ErrorIs(t, u.VerifySignature(c, address, now, "0x12"), domain.ErrInvalidArgument)
}

func TestAdminAuthorizer(t *testing.T) {
	a := NewAdminAuthorizer([]domain.Address{"0xADMIN"})
	assert.True(t, a.IsAdministrator(ctx.Background(), "0xadmin"))
	assert.True(t, a.IsAdministrator(ctx.Background(), "0xAdmin"))
	assert.False(t, a.IsAdministrator(ctx.Background(), "0xother"))
}
