package xz

import (
	"errors"

	"github.com/aionescu/minixz/cursor"
	"github.com/aionescu/minixz/lzma"
	"github.com/aionescu/minixz/lzma2"
	"github.com/aionescu/minixz/xlog"
)

var errSizeMismatch = newStructuralError("index record does not match the decoded block")

// Option configures a Decoder.
type Option func(*Decoder)

// WithIntegrityChecks toggles verification of the block's content checksum
// (the CRC32 declared by the stream header's check type, when present)
// against the bytes this decoder actually produced. It is on by default.
// It has no effect in size-query mode (out has zero length): computing a
// checksum requires the full output, which that mode never retains.
func WithIntegrityChecks(enabled bool) Option {
	return func(d *Decoder) { d.integrityChecks = enabled }
}

// WithMetaChecks toggles verification of the container's own structural
// CRC32s: the stream header, block header, index and stream footer. It is
// on by default. Disabling it still parses and validates every field's
// shape (magic, flags, counts, padding) — only the CRC32 comparisons
// themselves are skipped.
func WithMetaChecks(enabled bool) Option {
	return func(d *Decoder) { d.metaChecks = enabled }
}

// WithLogger attaches a logger that receives a trace of the stages Decode
// passes through: the stream's check type and block's dictionary size,
// the number of bytes the LZMA2 engine produced, and the outcome of the
// index cross-check. A nil logger (the default) disables tracing.
func WithLogger(l xlog.Logger) Option {
	return func(d *Decoder) { d.logger = l }
}

// Decoder decodes .xz streams under a fixed configuration of checks.
type Decoder struct {
	integrityChecks bool
	metaChecks      bool
	logger          xlog.Logger
	lastErr         error
}

// NewDecoder creates a Decoder with both integrity and meta checks enabled,
// adjusted by opts.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{integrityChecks: true, metaChecks: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ChecksumError reports whether the most recent call to Decode failed
// specifically because of a checksum mismatch, as opposed to a structural,
// decode or buffer error.
func (d *Decoder) ChecksumError() bool {
	return errors.Is(d.lastErr, ErrIntegrity)
}

// Decode decodes the .xz stream in into out, returning the number of bytes
// produced. If out has zero length, Decode runs in size-query mode: it
// walks the entire stream and returns the total uncompressed size without
// retaining the decoded bytes, and skips the block content checksum (see
// WithIntegrityChecks).
func Decode(in, out []byte) (int, error) {
	return NewDecoder().Decode(in, out)
}

// Decode is the method form of the package-level Decode, using d's
// configured checks.
func (d *Decoder) Decode(in, out []byte) (n int, err error) {
	defer func() { d.lastErr = err }()

	c := cursor.New(in)

	h, err := readHeader(c, d.metaChecks)
	if err != nil {
		return 0, classify(err)
	}
	xlog.Printf(d.logger, "xz: stream header ok, check type %d", h.Check)

	bh, err := readBlockHeader(c, d.metaChecks)
	if err != nil {
		return 0, classify(err)
	}
	xlog.Printf(d.logger, "xz: block header ok, dict size %d", bh.DictSize)

	sizeOnly := len(out) == 0
	dc := lzma.NewDict(out[:0:len(out)], bh.DictSize)

	blockDataStart := c.Offset()
	produced, err := lzma2.DecodeStream(c, dc, sizeOnly)
	if err != nil {
		return 0, classify(err)
	}
	compressedLen := c.Offset() - blockDataStart
	xlog.Printf(d.logger, "xz: block decoded, %d bytes produced (size-only=%t)", produced, sizeOnly)

	if err := c.Align4(); err != nil {
		return 0, classify(err)
	}

	checkBuf, err := c.Reserve(h.Check.size())
	if err != nil {
		return 0, classify(err)
	}
	if d.integrityChecks && !sizeOnly && h.Check == checkCRC32 {
		if crc32Of(dc.Output()) != le32(checkBuf) {
			return 0, newIntegrityError("block content CRC32 mismatch")
		}
	}

	unpaddedSize := bh.HeaderLen + compressedLen + h.Check.size()
	rec, indexSize, err := readIndex(c, d.metaChecks)
	if err != nil {
		return 0, classify(err)
	}
	if rec.UnpaddedSize != uint64(unpaddedSize) || rec.UncompressedSize != uint64(produced) {
		return 0, errSizeMismatch
	}

	if err := readFooter(c, h, indexSize, d.metaChecks); err != nil {
		return 0, classify(err)
	}
	xlog.Println(d.logger, "xz: index and footer verified")

	return int(produced), nil
}

// classify maps an error surfaced by cursor, lzma or lzma2 to one of this
// package's four error families. Errors already wrapped by this package
// (readHeader, readBlockHeader, readIndex, readFooter, decodeVLI) pass
// through unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStructural), errors.Is(err, ErrIntegrity), errors.Is(err, ErrDecode), errors.Is(err, ErrBuffer):
		return err

	case errors.Is(err, cursor.ErrEndOfInput), errors.Is(err, cursor.ErrCorruptPadding):
		return wrap(ErrStructural, err)

	case errors.Is(err, lzma.ErrDictFull):
		return wrap(ErrBuffer, err)

	case errors.Is(err, lzma.ErrInvalidDistance),
		errors.Is(err, lzma.ErrRangeHeader),
		errors.Is(err, lzma.ErrRangeBudget),
		errors.Is(err, lzma.ErrEndMarker):
		return wrap(ErrDecode, err)

	case errors.Is(err, lzma2.ErrChunkBudget):
		return wrap(ErrDecode, err)

	case errors.Is(err, lzma.ErrProperties),
		errors.Is(err, lzma2.ErrUncompressedChunk),
		errors.Is(err, lzma2.ErrControl),
		errors.Is(err, lzma2.ErrFirstChunkReset),
		errors.Is(err, lzma2.ErrUnsupportedReset),
		errors.Is(err, lzma2.ErrEmptyStream),
		errors.Is(err, lzma2.ErrChunkSize):
		return wrap(ErrStructural, err)

	default:
		return wrap(ErrStructural, err)
	}
}
