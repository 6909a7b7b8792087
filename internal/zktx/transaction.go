package zktx

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/nspcc-dev/zkchain"
	"github.com/nspcc-dev/zkchain/crypto"
	"golang.org/x/crypto/blake2b"
)

// Transaction identity labels.
const (
	txDomain = "ZkVM.txid"

	labelVersion = "version"
	labelMinTime = "mintime"
	labelMaxTime = "maxtime"
	labelEntry   = "entry"
	labelID      = "id"
)

// EntryType is a type of transaction log entry.
type EntryType byte

// Known entry types.
const (
	EntryIssue EntryType = iota + 1
	EntryInput
	EntryOutput
	EntryData
)

type (
	// TxHeader contains the fields visible to block validation.
	TxHeader struct {
		Version   uint64 `cbor:"1,keyasint"`
		MinTimeMs uint64 `cbor:"2,keyasint"`
		MaxTimeMs uint64 `cbor:"3,keyasint"`
	}

	// Entry is a single effect of a transaction.
	Entry struct {
		Type EntryType `cbor:"1,keyasint"`
		Data []byte    `cbor:"2,keyasint"`
	}

	// Log is the ordered list of effects of a verified transaction.
	Log []Entry

	// Tx is a transaction whose effects are authorized by a single ECDSA
	// signature over its body.
	Tx struct {
		Header    TxHeader `cbor:"1,keyasint"`
		Entries   []Entry  `cbor:"2,keyasint"`
		PubKey    []byte   `cbor:"3,keyasint"`
		Signature []byte   `cbor:"4,keyasint"`
	}

	// body is the signed part of Tx.
	body struct {
		Header  TxHeader `cbor:"1,keyasint"`
		Entries []Entry  `cbor:"2,keyasint"`
		PubKey  []byte   `cbor:"3,keyasint"`
	}
)

var _ zkchain.Tx = (*Tx)(nil)

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	// We should never fail here since canonical options are valid.
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// String implements fmt.Stringer interface.
func (t EntryType) String() string {
	switch t {
	case EntryIssue:
		return "issue"
	case EntryInput:
		return "input"
	case EntryOutput:
		return "output"
	case EntryData:
		return "data"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// New creates a transaction signed with priv.
func New(h TxHeader, entries []Entry, priv crypto.PrivateKey, pub crypto.PublicKey) (*Tx, error) {
	key, err := pub.MarshalBinary()
	if err != nil {
		return nil, err
	}

	tx := &Tx{
		Header:  h,
		Entries: entries,
		PubKey:  key,
	}
	if err := tx.Sign(priv); err != nil {
		return nil, err
	}

	return tx, nil
}

// Version implements zkchain.Tx interface.
func (t *Tx) Version() uint64 { return t.Header.Version }

// MinTimeMs implements zkchain.Tx interface.
func (t *Tx) MinTimeMs() uint64 { return t.Header.MinTimeMs }

// MaxTimeMs implements zkchain.Tx interface.
func (t *Tx) MaxTimeMs() uint64 { return t.Header.MaxTimeMs }

// SigHash returns the digest of the signed part of the transaction.
func (t *Tx) SigHash() (crypto.Uint256, error) {
	data, err := encMode.Marshal(body{
		Header:  t.Header,
		Entries: t.Entries,
		PubKey:  t.PubKey,
	})
	if err != nil {
		return crypto.Uint256{}, err
	}

	return blake2b.Sum256(data), nil
}

// Sign signs the transaction body with priv.
func (t *Tx) Sign(priv crypto.PrivateKey) error {
	h, err := t.SigHash()
	if err != nil {
		return err
	}

	sig, err := priv.Sign(h[:])
	if err != nil {
		return err
	}

	t.Signature = sig
	return nil
}

// Log returns the log a successful verification of t produces.
func (t *Tx) Log() Log {
	return append(Log(nil), t.Entries...)
}

// ID implements zkchain.Tx interface. Logs of foreign types are treated as
// empty.
func (t *Tx) ID(log zkchain.TxLog) zkchain.TxID {
	tr := crypto.NewTranscript(txDomain)
	tr.CommitU64(labelVersion, t.Header.Version)
	tr.CommitU64(labelMinTime, t.Header.MinTimeMs)
	tr.CommitU64(labelMaxTime, t.Header.MaxTimeMs)

	entries, _ := log.(Log)
	for _, e := range entries {
		tr.CommitBytes(labelEntry, append([]byte{byte(e.Type)}, e.Data...))
	}

	return zkchain.TxID(tr.ChallengeUint256(labelID))
}

// wireTx has the layout of Tx without its methods, cbor would call
// MarshalBinary of Tx recursively otherwise.
type wireTx Tx

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (t *Tx) MarshalBinary() ([]byte, error) {
	return encMode.Marshal((*wireTx)(t))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (t *Tx) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*wireTx)(t))
}
