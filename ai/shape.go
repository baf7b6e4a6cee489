package ai

import (
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/words"
)

// minShapeSamples is the fewest points InferShape will judge.
const minShapeSamples = 10

// InferShape guesses a visual profile from sampled stroke points: the bounding box aspect ratio
// picks the shape and the sample count picks the complexity.
func InferShape(points []models.Point) (words.Profile, bool) {
	if len(points) < minShapeSamples {
		return words.Profile{}, false
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	w, h := maxX-minX, maxY-minY

	prof := words.Profile{Shape: words.ShapeGeneric}
	switch {
	case h == 0 && w == 0:
	case h == 0:
		prof.Shape = words.ShapeWide
	default:
		aspect := w / h
		switch {
		case aspect > 1.4:
			prof.Shape = words.ShapeWide
		case aspect < 0.7:
			prof.Shape = words.ShapeTall
		case aspect >= 0.8 && aspect <= 1.25:
			prof.Shape = words.ShapeRound
		}
	}

	switch n := len(points); {
	case n < 120:
		prof.Complexity = words.ComplexityLow
	case n < 300:
		prof.Complexity = words.ComplexityMedium
	default:
		prof.Complexity = words.ComplexityHigh
	}
	return prof, true
}
