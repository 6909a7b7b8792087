package zktx

import (
	"crypto/rand"
	"testing"

	"github.com/nspcc-dev/zkchain/crypto"
	"github.com/stretchr/testify/require"
)

func newTestTx(t *testing.T, entries ...Entry) *Tx {
	priv, pub := crypto.Generate(rand.Reader)
	tx, err := New(TxHeader{Version: 1, MinTimeMs: 10, MaxTimeMs: 20}, entries, priv, pub)
	require.NoError(t, err)
	return tx
}

func TestTx_Fields(t *testing.T) {
	tx := newTestTx(t, Entry{Type: EntryIssue, Data: []byte{1}})

	require.EqualValues(t, 1, tx.Version())
	require.EqualValues(t, 10, tx.MinTimeMs())
	require.EqualValues(t, 20, tx.MaxTimeMs())
	require.Len(t, tx.Signature, crypto.SignatureSize)
	require.Equal(t, Log{{Type: EntryIssue, Data: []byte{1}}}, tx.Log())
}

func TestTx_ID(t *testing.T) {
	tx := newTestTx(t,
		Entry{Type: EntryInput, Data: []byte{1, 2}},
		Entry{Type: EntryOutput, Data: []byte{3}})
	id := tx.ID(tx.Log())

	require.Equal(t, id, tx.ID(tx.Log()))

	t.Run("log changes id", func(t *testing.T) {
		require.NotEqual(t, id, tx.ID(tx.Log()[:1]))
		require.NotEqual(t, id, tx.ID(nil))
	})

	t.Run("entry framing", func(t *testing.T) {
		other := Log{{Type: EntryInput, Data: []byte{1}}, {Type: EntryOutput, Data: []byte{2, 3}}}
		require.NotEqual(t, id, tx.ID(other))
	})

	t.Run("header changes id", func(t *testing.T) {
		log := tx.Log()
		tx.Header.MaxTimeMs++
		require.NotEqual(t, id, tx.ID(log))
	})
}

func TestTx_MarshalBinary(t *testing.T) {
	tx := newTestTx(t, Entry{Type: EntryData, Data: []byte("payload")})

	data, err := tx.MarshalBinary()
	require.NoError(t, err)

	decoded := new(Tx)
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, tx, decoded)

	t.Run("encoding is canonical", func(t *testing.T) {
		again, err := decoded.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, data, again)
	})

	t.Run("garbage", func(t *testing.T) {
		require.Error(t, new(Tx).UnmarshalBinary([]byte{0xFF, 0x00}))
	})

	_, err = NewVerifier().VerifyTx(decoded)
	require.NoError(t, err)
}

func TestEntryType_String(t *testing.T) {
	require.Equal(t, "issue", EntryIssue.String())
	require.Equal(t, "output", EntryOutput.String())
	require.Equal(t, "unknown(42)", EntryType(42).String())
}
