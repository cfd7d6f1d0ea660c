package ethereum

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// GenerateKey returns a fresh account key, the address is crypto.PubkeyToAddress of the public key
func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	return privateKey, privateKey.Public().(*ecdsa.PublicKey), nil
}

// SignMsg signs message the way personal_sign does
func SignMsg(message []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	return crypto.Sign(accounts.TextHash(message), key)
}
