package zkchain

import (
	"fmt"

	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrVersionReversion indicates the block version is lower than the
	// version of its parent.
	ErrVersionReversion = newRuleError("ErrVersionReversion")

	// ErrIllegalExtension indicates a version 1 header carrying extension
	// data.
	ErrIllegalExtension = newRuleError("ErrIllegalExtension")

	// ErrBadHeight indicates the block height is not the parent height
	// plus one.
	ErrBadHeight = newRuleError("ErrBadHeight")

	// ErrMismatchedPrev indicates the previous block id does not match
	// the id of the parent header.
	ErrMismatchedPrev = newRuleError("ErrMismatchedPrev")

	// ErrBadBlockTimestamp indicates the block timestamp is not strictly
	// greater than the parent timestamp.
	ErrBadBlockTimestamp = newRuleError("ErrBadBlockTimestamp")

	// ErrBadRefscount indicates the refscount grew by more than one.
	ErrBadRefscount = newRuleError("ErrBadRefscount")

	// ErrBadTxTimestamp indicates the block timestamp is outside of the
	// transaction validity window.
	ErrBadTxTimestamp = newRuleError("ErrBadTxTimestamp")

	// ErrBadTxVersion indicates a non-legacy transaction in a version 1
	// block.
	ErrBadTxVersion = newRuleError("ErrBadTxVersion")

	// ErrTxVerification indicates the transaction verifier rejected a
	// transaction. The verifier error is kept as the inner error.
	ErrTxVerification = newRuleError("ErrTxVerification")

	// ErrTxrootMismatch indicates the calculated transaction root does not
	// match the one in the header.
	ErrTxrootMismatch = newRuleError("ErrTxrootMismatch")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block failed due to one of the many validation rules.
type RuleError struct {
	message string
	inner   error
}

func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

func (e RuleError) Unwrap() error {
	return e.inner
}

func (e RuleError) Cause() error {
	return e.inner
}

// Is reports whether target is the same rule regardless of the inner error.
func (e RuleError) Is(target error) bool {
	t, ok := target.(RuleError)
	return ok && t.message == e.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

func wrapRuleError(rule RuleError, inner error) RuleError {
	return RuleError{message: rule.message, inner: inner}
}

// TxError is a rule violation attributed to a single transaction of the
// block.
type TxError struct {
	// Index is the position of the transaction in the block.
	Index int
	// Tx is the offending transaction.
	Tx Tx
	// Err is the violated rule.
	Err error
}

func (e TxError) Error() string {
	return fmt.Sprintf("transaction %d: %s", e.Index, e.Err)
}

func (e TxError) Unwrap() error {
	return e.Err
}

func newTxError(i int, tx Tx, err error) error {
	return errors.WithStack(TxError{Index: i, Tx: tx, Err: err})
}

// IsRuleError returns true iff err is caused by a consensus rule violation.
func IsRuleError(err error) bool {
	var rule RuleError
	return errors.As(err, &rule)
}
