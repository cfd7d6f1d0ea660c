package ethereum

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMsgSignature(t *testing.T) {
	messageTemplate := "sign in to the marketplace as %s at %d"
	privateKey, publicKey, err := GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(*publicKey).Hex()
	message := []byte(fmt.Sprintf(messageTemplate, address, 1659312000))

	signature, err := SignMsg(message, privateKey)
	require.NoError(t, err)

	res, err := ValidateMsgSignature(message, hexutil.Encode(signature), address)
	assert.NoError(t, err)
	assert.True(t, res)

	// incorrect message
	res2, err := ValidateMsgSignature([]byte("654321"), hexutil.Encode(signature), address)
	assert.NoError(t, err)
	assert.False(t, res2)

	// incorrect signer
	_, pubKey, err := GenerateKey()
	require.NoError(t, err)
	res3, err := ValidateMsgSignature(message, hexutil.Encode(signature), crypto.PubkeyToAddress(*pubKey).Hex())
	assert.NoError(t, err)
	assert.False(t, res3)

	// malformed
	_, err = ValidateMsgSignature(message, "0x1234", address)
	assert.Error(t, err)
	_, err = ValidateMsgSignature(message, "not hex", address)
	assert.Error(t, err)
}

func TestRecover(t *testing.T) {
	privateKey, publicKey, err := GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(*publicKey)
	message := []byte("list 0xc01/7 for 100")

	signature, err := SignMsg(message, privateKey)
	require.NoError(t, err)

	// wallets return V as 27 or 28
	legacy := append([]byte{}, signature...)
	legacy[crypto.RecoveryIDOffset] += 27
	for _, sig := range [][]byte{signature, legacy} {
		before := append([]byte{}, sig...)
		recovered, err := Recover(message, sig)
		require.NoError(t, err)
		assert.Equal(t, address, recovered)
		assert.Equal(t, before, sig)
	}

	bad := append([]byte{}, signature...)
	bad[crypto.RecoveryIDOffset] = 30
	_, err = Recover(message, bad)
	assert.ErrorIs(t, err, ErrRecoveryId)

	_, err = Recover(message, signature[:64])
	assert.ErrorIs(t, err, ErrSignatureLength)
}
