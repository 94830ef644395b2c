package boolean

// combinations returns every k-element subset of {0, ..., n-1} as
// ascending index slices, in lexicographic order. Used by Vote to
// enumerate k-of-n input subsets; package compute keeps its own copy
// for inclusion-exclusion over cut sets.
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}

	result := make([][]int, 0)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		combo := make([]int, k)
		copy(combo, idx)
		result = append(result, combo)

		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return result
}
