package sui

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// intentTransaction is the intent prefix for transaction data:
// scope TransactionData, version V0, app Sui.
//
//nolint:gochecknoglobals // constant prefix
var intentTransaction = []byte{0, 0, 0}

// Signer signs transaction digests on behalf of an address.
// *wallet.Account satisfies it.
type Signer interface {
	SuiAddress() string
	SerializedSignature(msg []byte) ([]byte, error)
}

// SigningDigest returns blake2b-256(intent || txBytes), the message a
// transaction signature covers.
func SigningDigest(txBytes []byte) [32]byte {
	msg := make([]byte, 0, len(intentTransaction)+len(txBytes))
	msg = append(msg, intentTransaction...)
	msg = append(msg, txBytes...)
	return blake2b.Sum256(msg)
}

// TransactionDigest returns the base58 digest the network assigns to txBytes.
func TransactionDigest(txBytes []byte) string {
	msg := make([]byte, 0, len("TransactionData::")+len(txBytes))
	msg = append(msg, "TransactionData::"...)
	msg = append(msg, txBytes...)
	return EncodeDigest(blake2b.Sum256(msg))
}

// SignTransaction signs txBytes and returns the base64 serialized signature.
func SignTransaction(signer Signer, txBytes []byte) (string, error) {
	digest := SigningDigest(txBytes)
	sig, err := signer.SerializedSignature(digest[:])
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
