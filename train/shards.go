package train

// Shards partitions n items into p contiguous half-open index ranges
// [lo, hi) using the standard balanced rule: every shard holds either
// ⌊n/p⌋ or ⌊n/p⌋+1 items, with the larger shards first, and the sizes
// sum to n. With p > n the trailing shards are empty.
//
// p must be positive; a non-positive count is a configuration defect and
// panics (the options constructors reject it before it can get here).
func Shards(n, p int) [][2]int {
	if p <= 0 {
		panic(ErrBadWorkers.Error())
	}

	k, m := n/p, n%p
	out := make([][2]int, p)
	lo := 0
	for i := 0; i < p; i++ {
		size := k
		if i < m {
			size++ // the first n%p shards take the extra item
		}
		out[i] = [2]int{lo, lo + size}
		lo += size
	}

	return out
}
