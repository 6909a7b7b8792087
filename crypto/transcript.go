package crypto

import (
	"encoding/binary"

	"github.com/gtank/merlin"
)

// Transcript is a domain-separated commit-and-squeeze hash built on Merlin.
// Every message is framed by its label and length by the underlying STROBE
// construction, so no separators are needed between committed fields.
//
// A Transcript is stateful: it must be used for exactly one object and
// must not be shared between goroutines.
type Transcript struct {
	t *merlin.Transcript
}

// NewTranscript returns a fresh transcript bound to the given domain label.
func NewTranscript(label string) *Transcript {
	return &Transcript{t: merlin.NewTranscript(label)}
}

// CommitBytes absorbs data under label.
func (t *Transcript) CommitBytes(label string, data []byte) {
	t.t.AppendMessage([]byte(label), data)
}

// CommitU64 absorbs x as an 8-byte little-endian message under label.
func (t *Transcript) CommitU64(label string, x uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	t.t.AppendMessage([]byte(label), buf[:])
}

// ChallengeBytes squeezes n bytes under label.
func (t *Transcript) ChallengeBytes(label string, n int) []byte {
	return t.t.ExtractBytes([]byte(label), n)
}

// ChallengeUint256 squeezes a 32-byte digest under label.
func (t *Transcript) ChallengeUint256(label string) (h Uint256) {
	copy(h[:], t.ChallengeBytes(label, Uint256Size))
	return
}
