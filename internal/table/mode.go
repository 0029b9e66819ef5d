package table

// Mode returns the most frequent non-null value of a column. Ties are
// broken by first occurrence in column order, so the result is
// deterministic for any input ordering. The second return value is false
// when the column has no non-null values.
func Mode(c Column) (Value, bool) {
	counts := make(map[string]int)
	first := make(map[string]int)
	values := make(map[string]Value)
	order := 0

	for _, v := range c.Values {
		if IsNull(v) {
			continue
		}
		key, err := CanonicalValue(v)
		if err != nil {
			continue
		}
		k := string(key)
		if _, seen := counts[k]; !seen {
			first[k] = order
			values[k] = v
		}
		counts[k]++
		order++
	}

	var (
		bestKey   string
		bestCount int
		found     bool
	)
	for k, n := range counts {
		if !found || n > bestCount || (n == bestCount && first[k] < first[bestKey]) {
			bestKey, bestCount, found = k, n, true
		}
	}
	if !found {
		return Null{}, false
	}
	return values[bestKey], true
}
