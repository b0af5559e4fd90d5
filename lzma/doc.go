// Package lzma implements the LZMA decoding engine for a single profile:
// lc=3, lp=0, pb=2. It provides the range coder, the context-model
// probability tables, the literal/match/rep state machine and the
// sliding-dictionary output that the lzma2 chunk framer drives one chunk
// at a time.
//
// The package decodes only; encoding is out of scope for this module.
package lzma
