// Package lzma2 implements the chunk framer for the single-block XZ
// profile decoded by this module: it reads LZMA2 control bytes, sizes each
// chunk, applies the chunk's reset flags to the LZMA engine, and delegates
// the compressed bytes of each chunk to the lzma package.
//
// Only the subset of LZMA2 needed by that profile is implemented: plain
// LZMA chunks, the first of which must carry a full reset; later chunks
// may carry no reset, a state-only reset or a full reset. Uncompressed
// chunks and properties-only resets are rejected as structural errors.
package lzma2
