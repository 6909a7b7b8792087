package zkchain

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Chain follows a single chain of blocks starting from a known tip. Every
// block is validated against the current tip and becomes the new tip once
// accepted. Chain does no fork choice and stores nothing but the tip header.
type Chain struct {
	v *Validator

	mtx   sync.RWMutex
	tip   BlockHeader
	tipID BlockID
}

// NewChain returns a chain with tip as the last accepted header.
func NewChain(v *Validator, tip BlockHeader) *Chain {
	return &Chain{
		v:     v,
		tip:   tip,
		tipID: tip.ID(),
	}
}

// Tip returns the last accepted header.
func (c *Chain) Tip() BlockHeader {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return c.tip
}

// TipID returns the identifier of the last accepted header.
func (c *Chain) TipID() BlockID {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return c.tipID
}

// AddBlock validates b against the current tip and advances the tip on
// success. Cancellation of ctx is only checked before validation starts,
// a block is never abandoned halfway.
func (c *Chain) AddBlock(ctx context.Context, b *Block) ([]TxLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	logs, err := c.v.Validate(b, &c.tip)
	if err != nil {
		return nil, errors.Wrapf(err, "block at height %d on top of %s", b.Header.Height, c.tipID)
	}

	c.tip = b.Header
	c.tipID = b.Header.ID()

	c.v.Logger.Debug("tip advanced",
		zap.Uint64("height", c.tip.Height),
		zap.Stringer("hash", c.tipID))

	return logs, nil
}

// Run validates blocks from the channel until it is closed, a block is
// rejected or ctx is cancelled. onAccept, if not nil, is called for every
// accepted block with its transaction logs.
func (c *Chain) Run(ctx context.Context, blocks <-chan *Block, onAccept func(*Block, []TxLog)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-blocks:
			if !ok {
				return nil
			}

			logs, err := c.AddBlock(ctx, b)
			if err != nil {
				return err
			}

			if onAccept != nil {
				onAccept(b, logs)
			}
		}
	}
}
