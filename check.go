package zkchain

import (
	"math"

	"github.com/pkg/errors"
)

// CheckHeader checks that h is a valid successor of prev. Checks are done in
// a fixed order and the first violated rule is returned.
func CheckHeader(h *BlockHeader, prev *BlockHeader) error {
	if h.Version < prev.Version {
		return errors.Wrapf(ErrVersionReversion, "version %d is lower than parent version %d",
			h.Version, prev.Version)
	}
	if h.Version == 1 && len(h.Ext) != 0 {
		return errors.Wrapf(ErrIllegalExtension, "%d bytes of extension in version 1 header", len(h.Ext))
	}
	if prev.Height == math.MaxUint64 || h.Height != prev.Height+1 {
		return errors.Wrapf(ErrBadHeight, "height %d does not follow parent height %d",
			h.Height, prev.Height)
	}
	if prevID := prev.ID(); h.Prev != prevID {
		return errors.Wrapf(ErrMismatchedPrev, "previous id %s, parent id %s", h.Prev, prevID)
	}
	if h.TimestampMs <= prev.TimestampMs {
		return errors.Wrapf(ErrBadBlockTimestamp, "timestamp %d is not after parent timestamp %d",
			h.TimestampMs, prev.TimestampMs)
	}
	if h.RefsCount > prev.RefsCount && h.RefsCount-prev.RefsCount > 1 {
		return errors.Wrapf(ErrBadRefscount, "refscount %d, parent refscount %d",
			h.RefsCount, prev.RefsCount)
	}

	return nil
}

// CheckTx performs structural admission checks of tx against the block
// timestamp and version. It does no cryptographic work.
func CheckTx(tx Tx, timestampMs uint64, version uint64) error {
	if tx.MinTimeMs() > timestampMs || timestampMs > tx.MaxTimeMs() {
		return errors.Wrapf(ErrBadTxTimestamp, "block time %d is outside of [%d, %d]",
			timestampMs, tx.MinTimeMs(), tx.MaxTimeMs())
	}
	if version == 1 && tx.Version() != 1 {
		return errors.Wrapf(ErrBadTxVersion, "version %d transaction in version 1 block", tx.Version())
	}

	return nil
}
