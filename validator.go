package zkchain

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Validator checks candidate blocks against their parent headers. It holds
// no state besides its configuration and is safe for concurrent use.
type Validator struct {
	Config
}

// New returns new Validator instance with provided options
// and an error if some of the options are missing or invalid.
func New(options ...Option) (*Validator, error) {
	cfg := defaultConfig()

	for _, option := range options {
		option(cfg)
	}

	if err := checkConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid validator configuration")
	}

	return &Validator{Config: *cfg}, nil
}

// Validate validates b using the default configuration and the given
// transaction verifier.
func Validate(b *Block, prev *BlockHeader, verifier TxVerifier) ([]TxLog, error) {
	v, err := New(WithVerifier(verifier))
	if err != nil {
		return nil, err
	}

	return v.Validate(b, prev)
}

// Validate checks that b is a valid successor of prev and returns logs of
// all block transactions in block order. The first violated rule is
// returned as an error, no partial results are produced.
func (v *Validator) Validate(b *Block, prev *BlockHeader) ([]TxLog, error) {
	start := time.Now()
	logs, err := v.validate(b, prev)
	v.Metrics.observe(len(b.Txs), time.Since(start), err)

	if err != nil {
		v.Logger.Info("block rejected",
			zap.Uint64("height", b.Header.Height),
			zap.Int("tx_count", len(b.Txs)),
			zap.String("rule", ruleName(err)),
			zap.Error(err))
		return nil, err
	}

	if ce := v.Logger.Check(zap.DebugLevel, "block accepted"); ce != nil {
		ce.Write(
			zap.Uint64("height", b.Header.Height),
			zap.Stringer("hash", b.Hash()),
			zap.Int("tx_count", len(b.Txs)),
			zap.Duration("took", time.Since(start)))
	}

	return logs, nil
}

func (v *Validator) validate(b *Block, prev *BlockHeader) ([]TxLog, error) {
	h := &b.Header

	if err := CheckHeader(h, prev); err != nil {
		return nil, err
	}

	// Only transactions before the first inadmissible one are verified,
	// a verification failure among them still takes precedence.
	var (
		verified     = len(b.Txs)
		admissionErr error
	)
	for i, tx := range b.Txs {
		if err := CheckTx(tx, h.TimestampMs, h.Version); err != nil {
			verified, admissionErr = i, newTxError(i, tx, err)
			break
		}
	}

	logs, ids, err := v.verifyTxs(b.Txs[:verified])
	if err != nil {
		return nil, err
	}
	if admissionErr != nil {
		return nil, admissionErr
	}

	if root := v.RootBuilder(TxRootLabel, ids); root != h.TxRoot {
		return nil, errors.Wrapf(ErrTxrootMismatch, "header root %x, computed root %x", h.TxRoot, root)
	}

	return logs, nil
}
