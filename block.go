package zkchain

import (
	"encoding/hex"

	"github.com/nspcc-dev/zkchain/crypto"
)

// Transcript labels of the header identity. Both the labels and the order
// of commitments are part of the consensus rules.
const (
	headerDomain = "ZkVM.blockheader"

	labelVersion   = "version"
	labelHeight    = "height"
	labelPrevID    = "previd"
	labelTimestamp = "timestamp_ms"
	labelTxRoot    = "txroot"
	labelUtxoRoot  = "utxoroot"
	labelNonceRoot = "nonceroot"
	labelRefsCount = "refscount"
	labelExt       = "ext"
	labelID        = "id"
)

type (
	// BlockID is a block identifier: a 32-byte digest of the block header.
	BlockID crypto.Uint256

	// BlockHeader contains all fields committed to by the block identifier.
	BlockHeader struct {
		// Version of the block rules. It never decreases along a chain.
		Version uint64
		// Height of the block. The initial header has height 1.
		Height uint64
		// Prev is the identifier of the previous block header.
		Prev BlockID
		// TimestampMs is the block time in milliseconds.
		TimestampMs uint64
		// TxRoot is the merkle root of the block transaction identifiers.
		TxRoot [32]byte
		// UtxoRoot is the commitment to the utxo set after this block.
		UtxoRoot [32]byte
		// NonceRoot is the commitment to the nonce set after this block.
		NonceRoot [32]byte
		// RefsCount is the number of recent block references kept by the chain.
		RefsCount uint64
		// Ext is a forward-compatible extension, empty for version 1.
		Ext []byte
	}

	// Block is a header together with the ordered list of its transactions.
	Block struct {
		Header BlockHeader
		Txs    []Tx
	}
)

// String implements fmt.Stringer interface.
func (id BlockID) String() string {
	return hex.EncodeToString(id[:])
}

// ID computes block identifier. Every call uses a fresh transcript, the
// result is not cached.
func (h *BlockHeader) ID() BlockID {
	t := crypto.NewTranscript(headerDomain)
	t.CommitU64(labelVersion, h.Version)
	t.CommitU64(labelHeight, h.Height)
	t.CommitBytes(labelPrevID, h.Prev[:])
	t.CommitU64(labelTimestamp, h.TimestampMs)
	t.CommitBytes(labelTxRoot, h.TxRoot[:])
	t.CommitBytes(labelUtxoRoot, h.UtxoRoot[:])
	t.CommitBytes(labelNonceRoot, h.NonceRoot[:])
	t.CommitU64(labelRefsCount, h.RefsCount)
	t.CommitBytes(labelExt, h.Ext)

	return BlockID(t.ChallengeUint256(labelID))
}

// MakeInitial returns the synthetic header used as the parent of the first
// real block. It has height 1, so the first block of a chain has height 2.
func MakeInitial(timestampMs uint64, refsCount uint64) BlockHeader {
	return BlockHeader{
		Version:     1,
		Height:      1,
		TimestampMs: timestampMs,
		RefsCount:   refsCount,
	}
}

// Hash returns the identifier of the block header.
func (b *Block) Hash() BlockID {
	return b.Header.ID()
}
