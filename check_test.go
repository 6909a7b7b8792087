package zkchain

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCheckHeader(t *testing.T) {
	prev := MakeInitial(1000, 5)
	valid := func() *BlockHeader {
		h := nextBlock(&prev).Header
		return &h
	}

	require.NoError(t, CheckHeader(valid(), &prev))

	t.Run("version", func(t *testing.T) {
		p := prev
		p.Version = 2
		h := valid()
		h.Prev = p.ID()
		require.ErrorIs(t, CheckHeader(h, &p), ErrVersionReversion)

		h.Version = 3
		require.NoError(t, CheckHeader(h, &p))
	})

	t.Run("extension", func(t *testing.T) {
		h := valid()
		h.Ext = []byte{1}
		require.ErrorIs(t, CheckHeader(h, &prev), ErrIllegalExtension)

		h.Version = 2
		require.NoError(t, CheckHeader(h, &prev))
	})

	t.Run("height", func(t *testing.T) {
		for _, height := range []uint64{0, prev.Height, prev.Height + 2, math.MaxUint64} {
			h := valid()
			h.Height = height
			require.ErrorIs(t, CheckHeader(h, &prev), ErrBadHeight, "height %d", height)
		}

		t.Run("no wrap-around", func(t *testing.T) {
			p := prev
			p.Height = math.MaxUint64
			h := valid()
			h.Height = 0
			h.Prev = p.ID()
			require.ErrorIs(t, CheckHeader(h, &p), ErrBadHeight)
		})
	})

	t.Run("previous id", func(t *testing.T) {
		h := valid()
		h.Prev[0] ^= 0xFF
		require.ErrorIs(t, CheckHeader(h, &prev), ErrMismatchedPrev)
	})

	t.Run("timestamp", func(t *testing.T) {
		h := valid()
		h.TimestampMs = prev.TimestampMs
		require.ErrorIs(t, CheckHeader(h, &prev), ErrBadBlockTimestamp)

		h.TimestampMs = prev.TimestampMs - 1
		require.ErrorIs(t, CheckHeader(h, &prev), ErrBadBlockTimestamp)

		h.TimestampMs = prev.TimestampMs + 1000
		require.NoError(t, CheckHeader(h, &prev))
	})

	t.Run("refscount", func(t *testing.T) {
		for _, rc := range []uint64{0, prev.RefsCount - 1, prev.RefsCount, prev.RefsCount + 1} {
			h := valid()
			h.RefsCount = rc
			require.NoError(t, CheckHeader(h, &prev), "refscount %d", rc)
		}
		for _, rc := range []uint64{prev.RefsCount + 2, math.MaxUint64} {
			h := valid()
			h.RefsCount = rc
			require.ErrorIs(t, CheckHeader(h, &prev), ErrBadRefscount, "refscount %d", rc)
		}

		t.Run("no overflow", func(t *testing.T) {
			p := prev
			p.RefsCount = math.MaxUint64
			h := valid()
			h.Prev = p.ID()
			h.RefsCount = math.MaxUint64
			require.NoError(t, CheckHeader(h, &p))
		})
	})

	t.Run("first violated rule is reported", func(t *testing.T) {
		h := valid()
		h.Height = 100
		h.TimestampMs = 0
		h.RefsCount = 100
		require.ErrorIs(t, CheckHeader(h, &prev), ErrBadHeight)

		h.Version = 0
		require.ErrorIs(t, CheckHeader(h, &prev), ErrVersionReversion)
	})

	t.Run("error is a rule error", func(t *testing.T) {
		h := valid()
		h.Height = 0
		err := CheckHeader(h, &prev)
		require.True(t, IsRuleError(err))

		var rule RuleError
		require.True(t, errors.As(err, &rule))
		require.Equal(t, ErrBadHeight, rule)
	})
}

func TestCheckTx(t *testing.T) {
	const a, b = 100, 200

	tx := newTestTx(1)
	tx.minTime, tx.maxTime = a, b

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		require.NoError(t, CheckTx(tx, a, 1))
		require.NoError(t, CheckTx(tx, (a+b)/2, 1))
		require.NoError(t, CheckTx(tx, b, 1))
	})

	t.Run("outside of window", func(t *testing.T) {
		require.ErrorIs(t, CheckTx(tx, a-1, 1), ErrBadTxTimestamp)
		require.ErrorIs(t, CheckTx(tx, b+1, 1), ErrBadTxTimestamp)
	})

	t.Run("version gating", func(t *testing.T) {
		tx2 := newTestTx(2)
		tx2.version = 2
		require.ErrorIs(t, CheckTx(tx2, 0, 1), ErrBadTxVersion)
		require.NoError(t, CheckTx(tx2, 0, 2))
		require.NoError(t, CheckTx(newTestTx(3), 0, 2))
	})

	t.Run("timestamp is checked before version", func(t *testing.T) {
		tx2 := *tx
		tx2.version = 2
		require.ErrorIs(t, CheckTx(&tx2, a-1, 1), ErrBadTxTimestamp)
	})
}
