package gen

// Pick returns one element of items chosen uniformly, or false when items is empty.
func Pick[V any](r *Rand, items []V) (V, bool) {
	if len(items) == 0 {
		var zero V
		return zero, false
	}
	return items[r.IntN(len(items))], true
}

// Sample returns up to k distinct elements of items in random order.
func Sample[V any](r *Rand, items []V, k int) []V {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	indices := SampleIndices(r, len(items), k)
	out := make([]V, len(indices))
	for i, idx := range indices {
		out[i] = items[idx]
	}
	return out
}

// SampleIndices returns min(k, n) distinct indices from [0, n).
func SampleIndices(r *Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
