package kpath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// minSegmentSamples is the lower bound applied to proportional shares.
const minSegmentSamples = 2

// Interpolate samples the polyline through points with exactly nTotal points.
// Errors: ErrTooFewPoints, ErrDimension, ErrTooFewSamples.
// Complexity: O(nTotal · d).
func Interpolate(points [][]float64, nTotal int) ([][]float64, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("Interpolate: %d points: %w", len(points), ErrTooFewPoints)
	}
	d := len(points[0])
	for i, p := range points {
		if len(p) != d {
			return nil, fmt.Errorf("Interpolate: point %d has %d components, want %d: %w", i, len(p), d, ErrDimension)
		}
	}
	if nTotal < len(points) {
		return nil, fmt.Errorf("Interpolate: nTotal=%d < %d points: %w", nTotal, len(points), ErrTooFewSamples)
	}

	counts := segmentCounts(points, nTotal-1)

	out := make([][]float64, 0, nTotal)
	for s, n := range counts {
		a, b := points[s], points[s+1]
		for j := 0; j < n; j++ {
			f := float64(j) / float64(n)
			p := make([]float64, d)
			for c := range p {
				p[c] = a[c] + (b[c]-a[c])*f
			}
			out = append(out, p)
		}
	}
	out = append(out, append([]float64(nil), points[len(points)-1]...))

	return out, nil
}

// segmentCounts splits budget samples over the segments of points.
// Stage 1: proportional shares with a floor of minSegmentSamples.
// Stage 2: the last segment takes the remainder.
// Stage 3: while the remainder is below minSegmentSamples, move samples from
// the largest share. Shares never drop below minSegmentSamples for this, so
// only a budget too small for every segment to get the minimum leaves a
// segment (the last one, or the donors) with a single sample.
func segmentCounts(points [][]float64, budget int) []int {
	segs := len(points) - 1
	lengths := make([]float64, segs)
	for i := 0; i < segs; i++ {
		lengths[i] = floats.Distance(points[i], points[i+1], 2)
	}
	total := floats.Sum(lengths)

	counts := make([]int, segs)
	used := 0
	for i := 0; i < segs-1; i++ {
		share := float64(budget) / float64(segs)
		if total > 0 {
			share = float64(budget) * lengths[i] / total
		}
		counts[i] = max(minSegmentSamples, int(math.Round(share)))
		used += counts[i]
	}
	last := segs - 1
	counts[last] = budget - used

	for last > 0 && counts[last] < minSegmentSamples {
		big := 0
		for i := 1; i < last; i++ {
			if counts[i] > counts[big] {
				big = i
			}
		}
		floor := minSegmentSamples
		if counts[last] < 1 {
			floor = 1
		}
		if counts[big] <= floor {
			break
		}
		counts[big]--
		counts[last]++
	}

	return counts
}
