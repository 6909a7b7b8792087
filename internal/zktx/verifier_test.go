package zktx

import (
	"testing"

	"github.com/nspcc-dev/zkchain"
	"github.com/stretchr/testify/require"
)

type foreignTx struct{}

func (foreignTx) Version() uint64               { return 1 }
func (foreignTx) MinTimeMs() uint64             { return 0 }
func (foreignTx) MaxTimeMs() uint64             { return 0 }
func (foreignTx) ID(zkchain.TxLog) zkchain.TxID { return zkchain.TxID{} }

func TestVerifier_VerifyTx(t *testing.T) {
	v := NewVerifier()

	t.Run("good", func(t *testing.T) {
		tx := newTestTx(t, Entry{Type: EntryIssue, Data: []byte{7}})
		log, err := v.VerifyTx(tx)
		require.NoError(t, err)
		require.Equal(t, tx.Log(), log)
	})

	t.Run("tampered entries", func(t *testing.T) {
		tx := newTestTx(t, Entry{Type: EntryIssue, Data: []byte{7}})
		tx.Entries[0].Data = []byte{8}
		_, err := v.VerifyTx(tx)
		require.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("tampered header", func(t *testing.T) {
		tx := newTestTx(t)
		tx.Header.MinTimeMs = 0
		_, err := v.VerifyTx(tx)
		require.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("malformed key", func(t *testing.T) {
		tx := newTestTx(t)
		tx.PubKey = []byte{1, 2, 3}
		_, err := v.VerifyTx(tx)
		require.ErrorIs(t, err, ErrMalformedKey)
	})

	t.Run("too many entries", func(t *testing.T) {
		tx := newTestTx(t, Entry{Type: EntryData}, Entry{Type: EntryData})
		_, err := (&Verifier{MaxEntries: 1}).VerifyTx(tx)
		require.ErrorIs(t, err, ErrTooManyEntries)
	})

	t.Run("foreign transaction", func(t *testing.T) {
		_, err := v.VerifyTx(foreignTx{})
		require.ErrorIs(t, err, ErrUnknownTx)
	})
}

func TestNewBlock(t *testing.T) {
	prev := zkchain.MakeInitial(5, 0)
	tx := newTestTx(t, Entry{Type: EntryOutput, Data: []byte{1}})

	b := NewBlock(&prev, 15, tx)
	require.EqualValues(t, 2, b.Header.Height)
	require.Equal(t, prev.ID(), b.Header.Prev)

	logs, err := zkchain.Validate(b, &prev, NewVerifier())
	require.NoError(t, err)
	require.Equal(t, []zkchain.TxLog{tx.Log()}, logs)
}
