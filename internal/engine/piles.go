// Package engine contains the patience-sort algorithm state and its primitives:
// pile search, placement and the final reconstruction.
package engine

// Pile is a stack of values; only the last element (the top) is ever inspected or removed.
// Read bottom-to-top, a pile is non-increasing.
type Pile []int

// Top returns the last appended value. It panics on an empty pile.
func (p Pile) Top() int {
	return p[len(p)-1]
}

// Piles is the ordered pile collection; index order is creation order.
type Piles []Pile

// Clone returns a deep copy of the collection.
func (ps Piles) Clone() Piles {
	if ps == nil {
		return nil
	}
	out := make(Piles, len(ps))
	for i, p := range ps {
		out[i] = append(Pile(nil), p...)
	}
	return out
}

// Len returns the total number of values across all piles.
func (ps Piles) Len() int {
	n := 0
	for _, p := range ps {
		n += len(p)
	}
	return n
}

// Ints returns the collection as plain slices, deep copied.
func (ps Piles) Ints() [][]int {
	out := make([][]int, len(ps))
	for i, p := range ps {
		out[i] = append([]int(nil), p...)
	}
	return out
}

// FindTargetPile returns the index of the first pile, scanning from index 0,
// whose top is greater than or equal to element, or -1 when no pile qualifies.
func FindTargetPile(element int, piles Piles) int {
	for i, p := range piles {
		if len(p) > 0 && p.Top() >= element {
			return i
		}
	}
	return -1
}

// PlaceElement appends element to piles[target], or starts a new pile when target is -1.
// The (possibly grown) collection is returned. A target outside the collection panics.
func PlaceElement(element, target int, piles Piles) Piles {
	if target == -1 {
		return append(piles, Pile{element})
	}
	piles[target] = append(piles[target], element)
	return piles
}

// Reconstruct merges the piles into a non-decreasing sequence by repeatedly popping the
// smallest top. When tops are equal the lowest pile index wins. The argument is not modified.
func Reconstruct(piles Piles) []int {
	work := piles.Clone()
	result := make([]int, 0, work.Len())
	for {
		minPile := -1
		for i, p := range work {
			if len(p) == 0 {
				continue
			}
			if minPile == -1 || p.Top() < work[minPile].Top() {
				minPile = i
			}
		}
		if minPile == -1 {
			return result
		}
		p := work[minPile]
		result = append(result, p.Top())
		work[minPile] = p[:len(p)-1]
	}
}

// Monotone reports whether every pile is non-increasing from bottom to top.
func Monotone(piles Piles) bool {
	for _, p := range piles {
		for i := 1; i < len(p); i++ {
			if p[i] > p[i-1] {
				return false
			}
		}
	}
	return true
}
