package lzma2

// lerror represents an LZMA2-specific error. It currently adds the prefix
// "lzma2: " to all errors created in the package.
type lerror struct {
	msg string
}

// Error returns the error message with the prefix "lzma2: ".
func (e lerror) Error() string {
	return "lzma2: " + e.msg
}

// newError creates a new lzma2 error with the given message.
func newError(msg string) error {
	return lerror{msg}
}

// Sentinel errors returned by readChunkSizes and DecodeStream. Callers that need
// to distinguish structural failures from decode failures can compare
// against these with errors.Is.
var (
	// ErrUncompressedChunk is returned for control bytes 0x01/0x02: this
	// profile only supports plain LZMA chunks.
	ErrUncompressedChunk = newError("uncompressed chunks are not supported")

	// ErrControl is returned for a control byte that is neither the
	// end marker, an uncompressed-chunk marker, nor a valid LZMA chunk
	// marker (0x80..0xFF).
	ErrControl = newError("invalid control byte")

	// ErrFirstChunkReset is returned when the first chunk of a stream
	// does not carry a full reset (dictionary + state + properties).
	ErrFirstChunkReset = newError("first chunk must carry a full reset")

	// ErrUnsupportedReset is returned for a properties-only reset
	// (state + properties, no dictionary reset): this profile only
	// accepts full resets and state-only resets.
	ErrUnsupportedReset = newError("unsupported chunk reset combination")

	// ErrEmptyStream is returned when the end-of-stream control byte is
	// the very first byte of the stream: a valid LZMA2 stream needs at
	// least one chunk.
	ErrEmptyStream = newError("empty LZMA2 stream")

	// ErrChunkSize is returned when a chunk's declared sizes fall
	// outside the ranges the LZMA2 format allows.
	ErrChunkSize = newError("chunk size out of range")

	// ErrChunkBudget is returned when the range coder does not end the
	// chunk with a zero code, or the LZMA engine did not produce exactly
	// the chunk's declared uncompressed size. The number of compressed
	// bytes the range coder read is not compared with the declared
	// compressed size.
	ErrChunkBudget = newError("chunk did not exhaust its declared budget")
)
