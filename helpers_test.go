package zkchain

import (
	"encoding/binary"
	"sync/atomic"
	"time"
)

type (
	// testTx is a transaction whose log is derived from its number.
	testTx struct {
		n       uint64
		version uint64
		minTime uint64
		maxTime uint64

		// fail, if set, is returned by the test verifier.
		fail error
		// delay is applied by the test verifier before returning.
		delay time.Duration
	}

	testLog uint64

	testVerifier struct {
		calls atomic.Int64
	}
)

func newTestTx(n uint64) *testTx {
	return &testTx{n: n, version: 1, maxTime: ^uint64(0)}
}

func (tx *testTx) Version() uint64   { return tx.version }
func (tx *testTx) MinTimeMs() uint64 { return tx.minTime }
func (tx *testTx) MaxTimeMs() uint64 { return tx.maxTime }

func (tx *testTx) ID(log TxLog) (id TxID) {
	binary.LittleEndian.PutUint64(id[:8], tx.n)
	if l, ok := log.(testLog); ok {
		binary.LittleEndian.PutUint64(id[8:16], uint64(l))
	}
	return
}

func (tx *testTx) log() testLog { return testLog(tx.n * 2) }

func (v *testVerifier) VerifyTx(t Tx) (TxLog, error) {
	v.calls.Add(1)

	tx := t.(*testTx)
	time.Sleep(tx.delay)
	if tx.fail != nil {
		return nil, tx.fail
	}
	return tx.log(), nil
}

// nextBlock returns a valid block on top of prev.
func nextBlock(prev *BlockHeader, txs ...*testTx) *Block {
	var (
		ids  = make([]TxID, len(txs))
		list = make([]Tx, len(txs))
	)
	for i, tx := range txs {
		ids[i] = tx.ID(tx.log())
		list[i] = tx
	}

	return &Block{
		Header: BlockHeader{
			Version:     prev.Version,
			Height:      prev.Height + 1,
			Prev:        prev.ID(),
			TimestampMs: prev.TimestampMs + 1,
			TxRoot:      ComputeTxRoot(ids),
			RefsCount:   prev.RefsCount,
		},
		Txs: list,
	}
}

// resign recomputes prev and root of b after its header or transactions were changed.
func resign(b *Block, prev *BlockHeader) {
	ids := make([]TxID, len(b.Txs))
	for i, tx := range b.Txs {
		ids[i] = tx.ID(tx.(*testTx).log())
	}
	b.Header.Prev = prev.ID()
	b.Header.TxRoot = ComputeTxRoot(ids)
}
