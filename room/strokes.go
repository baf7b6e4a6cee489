package room

import "github.com/wfunc/drawguess/models"

// StrokeBuffer keeps the most recent drawing samples; once full the oldest are evicted.
type StrokeBuffer struct {
	points []models.Point
	start  int
	size   int
}

func NewStrokeBuffer(capacity int) *StrokeBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &StrokeBuffer{points: make([]models.Point, capacity)}
}

func (b *StrokeBuffer) Add(p models.Point) {
	if b.size < len(b.points) {
		b.points[(b.start+b.size)%len(b.points)] = p
		b.size++
		return
	}
	b.points[b.start] = p
	b.start = (b.start + 1) % len(b.points)
}

func (b *StrokeBuffer) Len() int {
	return b.size
}

func (b *StrokeBuffer) Cap() int {
	return len(b.points)
}

// Points returns the samples oldest first.
func (b *StrokeBuffer) Points() []models.Point {
	out := make([]models.Point, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.points[(b.start+i)%len(b.points)]
	}
	return out
}

func (b *StrokeBuffer) Reset() {
	b.start = 0
	b.size = 0
}
