package render

import (
	"image/color"
	"math"
)

// PaletteEntry is the colour state of a single depth value.
type PaletteEntry struct {
	Standard color.RGBA
	Balanced color.RGBA
	Pixels   int
}

// Palette maps depths to greyscale colours. The standard ramp runs from white
// at depth 0 to black at the deepest level and never changes; the balanced
// colours are recomputed from pixel counts after every pass.
type Palette struct {
	entries []PaletteEntry
}

// NewPalette creates a palette with the given number of depth levels.
// Balanced colours start out equal to the standard ones.
func NewPalette(levels int) *Palette {
	p := &Palette{entries: make([]PaletteEntry, levels)}
	for m := range p.entries {
		v := 0
		if levels > 1 {
			v = int(math.Round(255 * float64(m) / float64(levels-1)))
		}
		g := uint8(255 - v)
		c := color.RGBA{R: g, G: g, B: g, A: 255}
		p.entries[m] = PaletteEntry{Standard: c, Balanced: c}
	}
	return p
}

// Levels is the number of depth values covered.
func (p *Palette) Levels() int {
	return len(p.entries)
}

// Entry returns the state of depth m.
func (p *Palette) Entry(m int) PaletteEntry {
	return p.entries[m]
}

// Color returns the balanced colour of depth m.
func (p *Palette) Color(m int) color.RGBA {
	return p.entries[m].Balanced
}

// Counts returns the accumulated pixel counts per depth.
func (p *Palette) Counts() []int {
	counts := make([]int, len(p.entries))
	for m, e := range p.entries {
		counts[m] = e.Pixels
	}
	return counts
}

// Reset clears all pixel counts.
func (p *Palette) Reset() {
	for m := range p.entries {
		p.entries[m].Pixels = 0
	}
}

// Accumulate adds a depth histogram to the pixel counts.
func (p *Palette) Accumulate(hist []int) {
	for m, n := range hist {
		p.entries[m].Pixels += n
	}
}

// Rebalance recomputes the balanced colours from the current pixel counts.
func (p *Palette) Rebalance(lowFraction, highFraction float64) Balance {
	counts := p.Counts()
	total := 0
	for _, n := range counts {
		total += n
	}
	b := BalanceCounts(counts, total, lowFraction, highFraction)
	for m, idx := range b.Index {
		p.entries[m].Balanced = p.entries[idx].Standard
	}
	return b
}

// Balance describes a histogram stretch of the palette.
type Balance struct {
	// Low and High are the depths at which the ignored tails end.
	Low, High int
	Offset    int
	Gain      float64

	// Index maps each depth to the standard colour it is drawn with.
	Index []int
}

// BalanceCounts stretches the depth range that holds all but the lowFraction
// and highFraction tails of total pixels across the full palette. Depths
// outside that window saturate to the palette ends.
func BalanceCounts(counts []int, total int, lowFraction, highFraction float64) Balance {
	levels := len(counts)
	b := Balance{
		Low:   LowCutoff(counts, float64(total)*lowFraction),
		High:  HighCutoff(counts, float64(total)*highFraction),
		Gain:  1,
		Index: make([]int, levels),
	}
	if b.Low != b.High {
		b.Offset = b.Low
		b.Gain = float64(levels-1) / float64(b.High-b.Low)
	}
	for m := range b.Index {
		idx := int(math.Round(b.Gain * float64(m-b.Offset)))
		b.Index[m] = min(max(idx, 0), levels-1)
	}
	return b
}

// LowCutoff returns the first depth, scanning upwards, at which the running
// pixel count reaches threshold.
func LowCutoff(counts []int, threshold float64) int {
	sum := 0
	for m, n := range counts {
		sum += n
		if float64(sum) >= threshold {
			return m
		}
	}
	return len(counts) - 1
}

// HighCutoff is LowCutoff scanning downwards from the deepest level.
func HighCutoff(counts []int, threshold float64) int {
	sum := 0
	for m := len(counts) - 1; m >= 0; m-- {
		sum += counts[m]
		if float64(sum) >= threshold {
			return m
		}
	}
	return 0
}
