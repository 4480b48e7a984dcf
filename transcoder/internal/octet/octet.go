// Package octet composes 16- and 32-bit code units from individual bytes
// and splits them back.
//
// Byte names follow significance, not position in memory: for a 16-bit
// word the bytes are High and Low, for a 32-bit word HH, HL, LH and LL from
// most to least significant. Endianness is decided by the caller through
// the order in which it passes or stores the bytes.
//
// This package is internal to the transcoder.
package octet

// Combine16 builds a 16-bit value from its high and low bytes.
func Combine16(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Combine32 builds a 32-bit value from its four bytes, most significant first.
func Combine32(hh, hl, lh, ll byte) uint32 {
	return uint32(hh)<<24 | uint32(hl)<<16 | uint32(lh)<<8 | uint32(ll)
}

// High returns the most significant byte of w.
func High(w uint16) byte { return byte(w >> 8) }

// Low returns the least significant byte of w.
func Low(w uint16) byte { return byte(w) }

// HH returns bits 24-31 of d.
func HH(d uint32) byte { return byte(d >> 24) }

// HL returns bits 16-23 of d.
func HL(d uint32) byte { return byte(d >> 16) }

// LH returns bits 8-15 of d.
func LH(d uint32) byte { return byte(d >> 8) }

// LL returns bits 0-7 of d.
func LL(d uint32) byte { return byte(d) }
