package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nspcc-dev/zkchain"
	"github.com/nspcc-dev/zkchain/crypto"
	"github.com/nspcc-dev/zkchain/internal/zktx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spaolacci/murmur3"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	defaultChanSize = 16

	// blockIntervalMs is the simulated time between two blocks.
	blockIntervalMs = 1000
	// txWindowMs is the validity window of every generated transaction.
	txWindowMs = 10 * blockIntervalMs
)

var (
	nodebug     = flag.Bool("nodebug", false, "disable debug logging")
	blockCount  = flag.Int("blocks", 100, "number of blocks to produce")
	txPerBlock  = flag.Int("txs", 8, "transactions per block")
	workers     = flag.Int("workers", 0, "verification workers (GOMAXPROCS by default)")
	faults      = flag.Uint64("faults", 0, "percentage of blocks to corrupt")
	metricsAddr = flag.String("metrics", "", "address to serve prometheus metrics on")
	duration    = flag.Duration("duration", 0, "duration of simulation (infinite by default)")
)

type producer struct {
	log  *zap.Logger
	priv crypto.PrivateKey
	pub  crypto.PublicKey
	tip  zkchain.BlockHeader
	seq  uint64
}

func main() {
	flag.Parse()

	logger := initLogger()
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	initMetrics(reg, logger)

	ctx, cancel := initContext(*duration)
	defer cancel()

	options := []zkchain.Option{
		zkchain.WithLogger(logger),
		zkchain.WithVerifier(zktx.NewVerifier()),
		zkchain.WithMetrics(zkchain.NewMetrics(reg)),
	}
	if *workers > 0 {
		options = append(options, zkchain.WithWorkers(*workers))
	}

	v, err := zkchain.New(options...)
	if err != nil {
		logger.Fatal("can't create validator", zap.Error(err))
	}

	genesis := zkchain.MakeInitial(uint64(time.Now().UnixMilli()), 0)
	chain := zkchain.NewChain(v, genesis)
	p := newProducer(genesis, logger)

	blocks := make(chan *zkchain.Block, defaultChanSize)
	go p.Run(ctx, blocks)

	var accepted int
	err = chain.Run(ctx, blocks, func(b *zkchain.Block, logs []zkchain.TxLog) {
		accepted++
		logger.Info("block accepted",
			zap.Uint64("height", b.Header.Height),
			zap.Stringer("hash", b.Hash()),
			zap.Int("logs", len(logs)))
	})

	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Info("simulation finished", zap.Int("accepted", accepted))
	case zkchain.IsRuleError(err):
		logger.Warn("simulation stopped on invalid block", zap.Int("accepted", accepted), zap.Error(err))
	default:
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func newProducer(tip zkchain.BlockHeader, log *zap.Logger) *producer {
	priv, pub := crypto.Generate(rand.Reader)
	return &producer{
		log:  log.With(zap.String("component", "producer")),
		priv: priv,
		pub:  pub,
		tip:  tip,
	}
}

// Run produces blockCount blocks into out and closes it.
func (p *producer) Run(ctx context.Context, out chan<- *zkchain.Block) {
	defer close(out)

	for i := 0; i < *blockCount; i++ {
		b, err := p.nextBlock()
		if err != nil {
			p.log.Error("can't produce block", zap.Error(err))
			return
		}

		if corrupt(b) {
			p.log.Debug("corrupting block", zap.Uint64("height", b.Header.Height))
			b.Header.TxRoot[0] ^= 0xFF
		}

		select {
		case <-ctx.Done():
			return
		case out <- b:
		}

		p.tip = b.Header
	}
}

func (p *producer) nextBlock() (*zkchain.Block, error) {
	ts := p.tip.TimestampMs + blockIntervalMs

	txs := make([]*zktx.Tx, *txPerBlock)
	for i := range txs {
		p.seq++

		var data [8]byte
		for j := range data {
			data[j] = byte(p.seq >> (8 * j))
		}

		tx, err := zktx.New(zktx.TxHeader{
			Version:   1,
			MinTimeMs: ts - blockIntervalMs,
			MaxTimeMs: ts + txWindowMs,
		}, []zktx.Entry{
			{Type: zktx.EntryIssue, Data: data[:]},
			{Type: zktx.EntryOutput, Data: data[:]},
		}, p.priv, p.pub)
		if err != nil {
			return nil, err
		}
		txs[i] = tx
	}

	return zktx.NewBlock(&p.tip, ts, txs...), nil
}

// corrupt selects blocks to break depending on their id, so that the choice
// doesn't depend on the producer state.
func corrupt(b *zkchain.Block) bool {
	if *faults == 0 {
		return false
	}

	id := b.Hash()
	return murmur3.Sum64(id[:])%100 < *faults
}

// initMetrics starts prometheus handler if metrics address is set.
func initMetrics(reg *prometheus.Registry, log *zap.Logger) {
	if *metricsAddr == "" {
		return
	}

	r := http.NewServeMux()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		err := http.ListenAndServe(*metricsAddr, r)
		if err != nil {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
}

// initLogger initializes new logger.
func initLogger() *zap.Logger {
	if *nodebug {
		logger, err := zap.NewProduction()
		if err != nil {
			panic("can't init logger")
		}
		return logger
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't init logger")
	}

	return logger
}

// initContext creates new context which will be cancelled by Ctrl+C.
func initContext(d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if d == 0 {
		return ctx, cancel
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, d)
	return ctx, func() {
		cancelTimeout()
		cancel()
	}
}
