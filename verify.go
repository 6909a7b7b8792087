package zkchain

import (
	"math"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// verifyTxs verifies txs concurrently. Results are stored by transaction
// index, so logs and ids are in block order whatever the completion order
// is. If several transactions are invalid, the one with the lowest index is
// reported.
func (v *Validator) verifyTxs(txs []Tx) ([]TxLog, []TxID, error) {
	var (
		logs = make([]TxLog, len(txs))
		ids  = make([]TxID, len(txs))
		errs = make([]error, len(txs))

		// Lowest index of a failed transaction seen so far. Transactions
		// after it can't change the outcome and are skipped.
		failed atomic.Int64
		eg     errgroup.Group
	)
	failed.Store(math.MaxInt64)
	eg.SetLimit(v.Workers)

	for i := range txs {
		i := i
		eg.Go(func() error {
			if int64(i) > failed.Load() {
				return nil
			}

			log, err := v.Verifier.VerifyTx(txs[i])
			if err != nil {
				errs[i] = err
				for {
					cur := failed.Load()
					if int64(i) >= cur || failed.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
				return nil
			}

			logs[i] = log
			ids[i] = txs[i].ID(log)
			return nil
		})
	}
	_ = eg.Wait()

	for i, err := range errs {
		if err != nil {
			v.Logger.Debug("transaction verification failed",
				zap.Int("index", i),
				zap.Error(err))
			return nil, nil, newTxError(i, txs[i], wrapRuleError(ErrTxVerification, err))
		}
	}

	return logs, ids, nil
}
