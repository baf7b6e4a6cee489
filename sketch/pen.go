// Package sketch renders catalog words as stroke sequences for the synthetic drawer.
package sketch

import (
	"math"

	"github.com/wfunc/drawguess/models"
)

const (
	CanvasWidth  = 640
	CanvasHeight = 480
	LineWidth    = 7
	BaseColor    = "#3b82f6"

	cx = CanvasWidth / 2
	cy = CanvasHeight / 2
)

// pen accumulates stroke events. Every shape helper is wrapped in a penDown/penUp pair.
type pen struct {
	events []models.StrokeEvent
	color  string
}

func newPen() *pen {
	return &pen{color: BaseColor}
}

func (p *pen) ink(c string) *pen {
	if c == "" {
		c = BaseColor
	}
	p.color = c
	return p
}

func (p *pen) up()   { p.events = append(p.events, models.StrokeEvent{Type: models.StrokePenUp}) }
func (p *pen) down() { p.events = append(p.events, models.StrokeEvent{Type: models.StrokePenDown}) }

func (p *pen) point(x, y float64) {
	p.events = append(p.events, models.StrokeEvent{
		Type:      models.StrokeDraw,
		X:         x,
		Y:         y,
		Color:     p.color,
		LineWidth: LineWidth,
	})
}

// stroke draws fn as one continuous pen-down run.
func (p *pen) stroke(fn func()) {
	p.down()
	fn()
	p.up()
}

func (p *pen) seg(x1, y1, x2, y2 float64, steps int) {
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p.point(x1+(x2-x1)*t, y1+(y2-y1)*t)
	}
}

func (p *pen) line(x1, y1, x2, y2 float64) {
	p.seg(x1, y1, x2, y2, 24)
}

// poly joins consecutive vertices; closed polygons repeat the first vertex last.
func (p *pen) poly(pts ...[2]float64) {
	for i := 1; i < len(pts); i++ {
		p.line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
}

func (p *pen) rect(x, y, w, h float64) {
	p.poly([2]float64{x, y}, [2]float64{x + w, y}, [2]float64{x + w, y + h}, [2]float64{x, y + h}, [2]float64{x, y})
}

func (p *pen) ellipseArc(xc, yc, rx, ry, from, to float64, segments int) {
	px, py := xc+rx*math.Cos(from), yc+ry*math.Sin(from)
	for i := 1; i <= segments; i++ {
		a := from + (to-from)*float64(i)/float64(segments)
		x, y := xc+rx*math.Cos(a), yc+ry*math.Sin(a)
		p.seg(px, py, x, y, 1)
		px, py = x, y
	}
}

func (p *pen) arc(xc, yc, r, from, to float64, segments int) {
	p.ellipseArc(xc, yc, r, r, from, to, segments)
}

func (p *pen) circle(xc, yc, r float64, segments int) {
	p.arc(xc, yc, r, 0, 2*math.Pi, segments)
}

func (p *pen) ellipse(xc, yc, rx, ry float64, segments int) {
	p.ellipseArc(xc, yc, rx, ry, 0, 2*math.Pi, segments)
}

func (p *pen) wave(x1, y1, x2, y2 float64, waves, amplitude float64) {
	const steps = 80
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		p.point(x1+(x2-x1)*t, y1+(y2-y1)*t+math.Sin(t*waves*2*math.Pi)*amplitude)
	}
}

// spiral is drawn for words without a template.
func (p *pen) spiral() {
	const target = 80.0
	r := 10.0
	p.up()
	p.stroke(func() {
		for a := 0.0; a < 4*math.Pi; a += 0.06 {
			p.point(cx+r*math.Cos(a), cy+r*math.Sin(a))
			r += (target - r) * 0.02
		}
	})
}
