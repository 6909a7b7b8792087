package zktx

import (
	"github.com/nspcc-dev/zkchain"
	"github.com/nspcc-dev/zkchain/crypto"
	"github.com/pkg/errors"
)

// DefaultMaxEntries is the default limit on the number of transaction entries.
const DefaultMaxEntries = 1024

var (
	// ErrUnknownTx is returned for transactions of foreign types.
	ErrUnknownTx = errors.New("unknown transaction type")
	// ErrTooManyEntries is returned for transactions exceeding the entry limit.
	ErrTooManyEntries = errors.New("too many entries")
	// ErrMalformedKey is returned when the transaction key can't be decoded.
	ErrMalformedKey = errors.New("malformed public key")
	// ErrBadSignature is returned when the transaction signature is invalid.
	ErrBadSignature = errors.New("bad signature")
)

// Verifier checks Tx signatures. It is stateless and safe for concurrent use.
type Verifier struct {
	// MaxEntries is the maximum number of entries in a transaction.
	MaxEntries int
}

var _ zkchain.TxVerifier = (*Verifier)(nil)

// NewVerifier returns verifier with default parameters.
func NewVerifier() *Verifier {
	return &Verifier{MaxEntries: DefaultMaxEntries}
}

// VerifyTx implements zkchain.TxVerifier interface.
func (v *Verifier) VerifyTx(t zkchain.Tx) (zkchain.TxLog, error) {
	tx, ok := t.(*Tx)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTx, "%T", t)
	}

	if len(tx.Entries) > v.MaxEntries {
		return nil, errors.Wrapf(ErrTooManyEntries, "%d > %d", len(tx.Entries), v.MaxEntries)
	}

	pub, err := crypto.PublicKeyFromBytes(tx.PubKey)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedKey, err.Error())
	}

	h, err := tx.SigHash()
	if err != nil {
		return nil, errors.Wrap(err, "can't encode transaction")
	}

	if err := pub.Verify(h[:], tx.Signature); err != nil {
		return nil, errors.Wrap(ErrBadSignature, err.Error())
	}

	return tx.Log(), nil
}
