// Package varint implements POF's packed integer codec: a signed,
// variable-length encoding where the first byte carries 6 magnitude
// bits plus a sign bit and a continuation bit, and every subsequent
// byte carries 7 magnitude bits plus a continuation bit. Values in
// [-64, 63] always fit in one byte.
//
// The sign is folded in by bitwise-complementing negative inputs
// before splitting them into bit groups, rather than by storing the
// absolute value — this is what gives the one-byte range its
// asymmetric-looking bound (-64 complements to 63, which still fits
// 6 bits) and keeps the reverse transform (complement on read) a
// single branch.
package varint

import (
	"math"

	"github.com/pofkit/pof/errs"
)

const (
	firstByteMagnitudeBits = 6
	firstByteMagnitudeMask = 0x3F
	firstByteSignBit       = 0x40
	contByteMagnitudeBits  = 7
	contByteMagnitudeMask  = 0x7F
	continuationBit        = 0x80

	// MaxLen32 is the longest a packed int32 can encode to.
	MaxLen32 = 5
	// MaxLen64 is the longest a packed int64 can encode to.
	MaxLen64 = 10
)

// AppendInt32 appends the packed encoding of v to dst and returns the
// extended slice.
func AppendInt32(dst []byte, v int32) []byte {
	return AppendInt64(dst, int64(v))
}

// AppendInt64 appends the packed encoding of v to dst and returns the
// extended slice.
func AppendInt64(dst []byte, v int64) []byte {
	neg := v < 0

	var n uint64
	if neg {
		n = uint64(^v)
	} else {
		n = uint64(v)
	}

	b := byte(n & firstByteMagnitudeMask)
	n >>= firstByteMagnitudeBits

	if neg {
		b |= firstByteSignBit
	}
	if n != 0 {
		b |= continuationBit
	}
	dst = append(dst, b)

	for n != 0 {
		b = byte(n & contByteMagnitudeMask)
		n >>= contByteMagnitudeBits
		if n != 0 {
			b |= continuationBit
		}
		dst = append(dst, b)
	}

	return dst
}

// LenInt32 reports how many bytes AppendInt32 would write for v,
// without writing anything.
func LenInt32(v int32) int {
	return LenInt64(int64(v))
}

// LenInt64 reports how many bytes AppendInt64 would write for v,
// without writing anything.
func LenInt64(v int64) int {
	var n uint64
	if v < 0 {
		n = uint64(^v)
	} else {
		n = uint64(v)
	}

	n >>= firstByteMagnitudeBits
	size := 1
	for n != 0 {
		n >>= contByteMagnitudeBits
		size++
	}

	return size
}

// ReadInt32 decodes a packed integer from src and returns the decoded
// value, narrowed to int32, and the number of bytes consumed.
//
// ReadInt32 returns errs.ErrMalformedStream if src ends before a
// terminal (non-continuation) byte, or if the decoded magnitude
// overflows 32 bits.
func ReadInt32(src []byte) (int32, int, error) {
	v, n, err := ReadInt64(src)
	if err != nil {
		return 0, n, err
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, n, errs.ErrMalformedStream
	}

	return int32(v), n, nil
}

// ReadInt64 decodes a packed integer from src and returns the decoded
// value and the number of bytes consumed.
//
// ReadInt64 returns errs.ErrMalformedStream if src ends before a
// terminal (non-continuation) byte, or if the continuation run is
// longer than MaxLen64.
func ReadInt64(src []byte) (int64, int, error) {
	if len(src) == 0 {
		return 0, 0, errs.ErrMalformedStream
	}

	b := src[0]
	neg := b&firstByteSignBit != 0
	n := uint64(b & firstByteMagnitudeMask)
	shift := uint(firstByteMagnitudeBits)
	i := 1

	for b&continuationBit != 0 {
		if i >= len(src) {
			return 0, i, errs.ErrMalformedStream
		}
		if shift >= 64 {
			// No room left for another magnitude bit; a well-formed
			// encoder never emits a continuation here.
			return 0, i, errs.ErrMalformedStream
		}

		b = src[i]
		mag := uint64(b & contByteMagnitudeMask)
		if shift+contByteMagnitudeBits > 64 {
			lost := shift + contByteMagnitudeBits - 64
			if mag>>(contByteMagnitudeBits-lost) != 0 {
				return 0, i, errs.ErrMalformedStream
			}
		}

		n |= mag << shift
		shift += contByteMagnitudeBits
		i++
	}

	if neg {
		return ^int64(n), i, nil
	}

	return int64(n), i, nil
}

// SkipN advances past k consecutive packed integers in src and
// returns the total number of bytes skipped.
//
// SkipN returns errs.ErrMalformedStream if src ends mid-value before
// all k integers are skipped.
func SkipN(src []byte, k int) (int, error) {
	off := 0
	for range k {
		_, n, err := ReadInt64(src[off:])
		if err != nil {
			return off, err
		}
		off += n
	}

	return off, nil
}
