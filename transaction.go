package zkchain

import (
	"encoding/hex"

	"github.com/nspcc-dev/zkchain/crypto"
)

type (
	// TxID is a transaction identifier derived from the transaction and its
	// log.
	TxID crypto.Uint256

	// TxLog is an opaque record of transaction effects produced by the
	// verifier. It is returned to the caller as is.
	TxLog any

	// Tx is a generic transaction interface. Only the fields needed for
	// admission checks are visible here, everything else is interpreted by
	// the TxVerifier.
	Tx interface {
		// Version returns transaction version.
		Version() uint64
		// MinTimeMs returns the lower bound of the validity window, inclusive.
		MinTimeMs() uint64
		// MaxTimeMs returns the upper bound of the validity window, inclusive.
		MaxTimeMs() uint64
		// ID must return the identifier of the transaction with the given log.
		// It must be a pure function of the pair.
		ID(log TxLog) TxID
	}

	// TxVerifier checks transaction proofs. Implementations hold their own
	// verification parameters and must be safe for concurrent use.
	TxVerifier interface {
		// VerifyTx returns the transaction log or an error if the transaction
		// is invalid.
		VerifyTx(tx Tx) (TxLog, error)
	}

	// TxVerifierFunc is an adapter to use ordinary functions as TxVerifier.
	TxVerifierFunc func(tx Tx) (TxLog, error)

	// RootBuilder computes an order-sensitive commitment to ids under the
	// domain label.
	RootBuilder func(label string, ids []TxID) [32]byte
)

// TxRootLabel is the domain label of the block transaction root.
const TxRootLabel = "transaction_ids"

// VerifyTx implements TxVerifier interface.
func (f TxVerifierFunc) VerifyTx(tx Tx) (TxLog, error) {
	return f(tx)
}

// String implements fmt.Stringer interface.
func (id TxID) String() string {
	return hex.EncodeToString(id[:])
}
