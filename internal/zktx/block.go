package zktx

import (
	"github.com/nspcc-dev/zkchain"
)

// NewBlock returns a block on top of prev carrying txs. Version, roots and
// refscount are inherited from prev, the transaction root is computed from
// the logs txs produce when verified.
func NewBlock(prev *zkchain.BlockHeader, timestampMs uint64, txs ...*Tx) *zkchain.Block {
	var (
		ids  = make([]zkchain.TxID, len(txs))
		list = make([]zkchain.Tx, len(txs))
	)
	for i, tx := range txs {
		list[i] = tx
		ids[i] = tx.ID(tx.Log())
	}

	return &zkchain.Block{
		Header: zkchain.BlockHeader{
			Version:     prev.Version,
			Height:      prev.Height + 1,
			Prev:        prev.ID(),
			TimestampMs: timestampMs,
			TxRoot:      zkchain.ComputeTxRoot(ids),
			UtxoRoot:    prev.UtxoRoot,
			NonceRoot:   prev.NonceRoot,
			RefsCount:   prev.RefsCount,
		},
		Txs: list,
	}
}
