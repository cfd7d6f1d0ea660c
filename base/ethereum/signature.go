package ethereum

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"
)

var (
	ErrSignatureLength = errors.New("signature must be 65 bytes long")
	ErrRecoveryId      = errors.New("invalid recovery id, V is not 27 or 28")
)

// ValidateMsgSignature reports whether signature is a personal_sign of message by signer
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, xerrors.Errorf("decode signature: %w", err)
	}

	recovered, err := Recover(message, sig)
	if err != nil {
		return false, err
	}
	return recovered == common.HexToAddress(signer), nil
}

// Recover returns the account whose key produced the personal_sign signature
// of message. V may be 0/1 or 27/28, sig is left untouched
func Recover(message, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrSignatureLength
	}

	normalized := make([]byte, len(sig))
	copy(normalized, sig)
	v := normalized[crypto.RecoveryIDOffset]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return common.Address{}, ErrRecoveryId
	}
	normalized[crypto.RecoveryIDOffset] = v

	pub, err := crypto.SigToPub(accounts.TextHash(message), normalized)
	if err != nil {
		return common.Address{}, xerrors.Errorf("recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
