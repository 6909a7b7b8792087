package zkchain

import (
	"errors"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/nspcc-dev/zkchain/crypto"
	"github.com/nspcc-dev/zkchain/merkle"
	"go.uber.org/zap"
)

// Config contains initialization and working parameters for Validator.
type Config struct {
	// Logger
	Logger *zap.Logger
	// Verifier checks transaction proofs and produces transaction logs.
	Verifier TxVerifier
	// RootBuilder computes the transaction root of a block.
	RootBuilder RootBuilder
	// Workers is the maximum number of transactions verified concurrently.
	Workers int
	// Metrics collects validation statistics, nil disables collection.
	Metrics *Metrics
}

// Option is a Validator configuration option.
type Option = func(cfg *Config)

func defaultConfig() *Config {
	// fields which are set to nil must be provided from client
	return &Config{
		Logger:      zap.NewNop(),
		Verifier:    nil,
		RootBuilder: MerkleRoot,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

func checkConfig(cfg *Config) error {
	var result *multierror.Error

	if cfg.Logger == nil {
		result = multierror.Append(result, errors.New("Logger is nil"))
	}
	if cfg.Verifier == nil {
		result = multierror.Append(result, errors.New("Verifier is nil"))
	}
	if cfg.RootBuilder == nil {
		result = multierror.Append(result, errors.New("RootBuilder is nil"))
	}
	if cfg.Workers <= 0 {
		result = multierror.Append(result, errors.New("Workers must be positive"))
	}

	return result.ErrorOrNil()
}

// MerkleRoot is the default RootBuilder. It builds a merkle tree over ids
// in the given order.
func MerkleRoot(label string, ids []TxID) [32]byte {
	hashes := make([]crypto.Uint256, len(ids))
	for i := range ids {
		hashes[i] = crypto.Uint256(ids[i])
	}

	return merkle.Root(label, hashes...)
}

// ComputeTxRoot returns the default transaction root over ids.
func ComputeTxRoot(ids []TxID) [32]byte {
	return MerkleRoot(TxRootLabel, ids)
}

// WithLogger sets Logger.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = log
	}
}

// WithVerifier sets Verifier.
func WithVerifier(v TxVerifier) Option {
	return func(cfg *Config) {
		cfg.Verifier = v
	}
}

// WithRootBuilder sets RootBuilder.
func WithRootBuilder(f RootBuilder) Option {
	return func(cfg *Config) {
		cfg.RootBuilder = f
	}
}

// WithWorkers sets Workers.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		cfg.Workers = n
	}
}

// WithMetrics sets Metrics.
func WithMetrics(m *Metrics) Option {
	return func(cfg *Config) {
		cfg.Metrics = m
	}
}
