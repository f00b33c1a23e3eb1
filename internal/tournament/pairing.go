package tournament

// PairAlgorithms implements the pairing formula of spec.md §6 for n
// registered algorithms on the map indexed by mapIndex: d = 1 +
// (mapIndex mod (n-1)); for every i in [0,n) take the unordered pairs
// (i, (i+d) mod n) and (i, (i-d) mod n), excluding self-pairs, and
// deduplicate. The result is sorted for determinism.
func PairAlgorithms(n, mapIndex int) [][2]int {
	if n < 2 {
		return nil
	}
	d := 1 + mod(mapIndex, n-1)

	seen := make(map[[2]int]bool)
	var pairs [][2]int
	add := func(i, j int) {
		if i == j {
			return
		}
		key := [2]int{i, j}
		if i > j {
			key = [2]int{j, i}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		pairs = append(pairs, key)
	}

	for i := 0; i < n; i++ {
		add(i, mod(i+d, n))
		add(i, mod(i-d, n))
	}

	// Stable, deterministic ordering: by first index then second.
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && less(pairs[j], pairs[j-1]); j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
	return pairs
}

func less(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}
