package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"github.com/nspcc-dev/rfc6979"
)

// SignatureSize is the size of a serialized ECDSA signature (r || s).
const SignatureSize = 64

type (
	// ECDSAPub is a P-256 public key encoded in compressed form.
	ECDSAPub struct {
		*ecdsa.PublicKey
	}

	// ECDSAPriv is a P-256 private key producing deterministic signatures.
	ECDSAPriv struct {
		*ecdsa.PrivateKey
	}
)

var (
	// ErrBadSignature is returned by Verify for signatures not matching the message.
	ErrBadSignature = errors.New("bad signature")

	errBadPublicKey = errors.New("can't unmarshal ECDSA public key")
)

func generateECDSA(r io.Reader) (PrivateKey, PublicKey) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), r)
	if err != nil {
		return nil, nil
	}

	return &ECDSAPriv{PrivateKey: key}, &ECDSAPub{PublicKey: &key.PublicKey}
}

// Sign implements PrivateKey interface. The same key and message always
// produce the same signature (RFC 6979).
func (e ECDSAPriv) Sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	r, s := rfc6979.SignECDSA(e.PrivateKey, digest[:], sha256.New)

	sig := make([]byte, SignatureSize)
	r.FillBytes(sig[:SignatureSize/2])
	s.FillBytes(sig[SignatureSize/2:])

	return sig, nil
}

// MarshalBinary implements encoding.BinaryMarshaler interface.
func (e ECDSAPub) MarshalBinary() ([]byte, error) {
	return elliptic.MarshalCompressed(e.Curve, e.X, e.Y), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
// Only compressed P-256 points are accepted.
func (e *ECDSAPub) UnmarshalBinary(data []byte) error {
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, data)
	if x == nil {
		return errBadPublicKey
	}

	e.PublicKey = &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
	return nil
}

// Verify implements PublicKey interface.
func (e ECDSAPub) Verify(msg, sig []byte) error {
	if len(sig) != SignatureSize {
		return ErrBadSignature
	}

	digest := sha256.Sum256(msg)
	r := new(big.Int).SetBytes(sig[:SignatureSize/2])
	s := new(big.Int).SetBytes(sig[SignatureSize/2:])
	if !ecdsa.Verify(e.PublicKey, digest[:], r, s) {
		return ErrBadSignature
	}
	return nil
}
