package render

// columnRange is a half-open range of screen columns owned by one worker.
type columnRange struct {
	from, to int
}

// splitColumns splits width columns into at most n contiguous ranges.
// Ranges at the end are one column narrower when width is not divisible by n.
func splitColumns(width, n int) []columnRange {
	if width <= 0 {
		return nil
	}
	if n < 1 {
		panic("worker count must be positive")
	}
	n = min(n, width)

	ranges := make([]columnRange, 0, n)
	step, rest := width/n, width%n
	from := 0
	for i := 0; i < n; i++ {
		w := step
		if i < rest {
			w++
		}
		ranges = append(ranges, columnRange{from: from, to: from + w})
		from += w
	}
	return ranges
}
