package domain

import "math/bits"

// Bitset is a set of small non-negative ids over a fixed universe size.
// Binary operations require operands created with the same universe size.
type Bitset []uint64

// NewBitset returns an empty set able to hold ids in [0, n).
func NewBitset(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

func (b Bitset) Add(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b Bitset) Remove(i int) {
	b[i/64] &^= 1 << (uint(i) % 64)
}

func (b Bitset) Has(i int) bool {
	if i < 0 || i/64 >= len(b) {
		return false
	}
	return b[i/64]&(1<<(uint(i)%64)) != 0
}

func (b Bitset) Clone() Bitset {
	out := make(Bitset, len(b))
	copy(out, b)
	return out
}

// Fill adds every id in [0, n).
func (b Bitset) Fill(n int) {
	for i := range b {
		b[i] = ^uint64(0)
	}
	if rem := n % 64; rem != 0 && len(b) > 0 {
		b[len(b)-1] = 1<<uint(rem) - 1
	}
}

func (b Bitset) Clear() {
	for i := range b {
		b[i] = 0
	}
}

// SetIntersection stores x ∩ y into b.
func (b Bitset) SetIntersection(x, y Bitset) {
	for i := range b {
		b[i] = x[i] & y[i]
	}
}

// SetDifference stores x \ y into b.
func (b Bitset) SetDifference(x, y Bitset) {
	for i := range b {
		b[i] = x[i] &^ y[i]
	}
}

func (b Bitset) IsEmpty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b Bitset) Len() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Members returns the ids in ascending order.
func (b Bitset) Members() []int {
	out := make([]int, 0, b.Len())
	for i, w := range b {
		for w != 0 {
			out = append(out, i*64+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return out
}
