package sketch

import (
	"math"
	"strings"

	"github.com/wfunc/drawguess/models"
)

type template struct {
	word string
	draw func(p *pen)
}

// templates is searched in order when a word has no exact match, so longer words that
// contain a shorter key ("sunflower") still resolve to something sensible.
var templates = []template{
	{"sun", drawSun},
	{"moon", drawMoon},
	{"ball", drawBall},
	{"pizza", drawPizza},
	{"house", drawHouse},
	{"tree", drawTree},
	{"car", drawCar},
	{"train", drawTrain},
	{"book", drawBook},
	{"phone", drawPhone},
	{"camera", drawCamera},
	{"airplane", drawAirplane},
	{"rocket", drawRocket},
	{"fish", drawFish},
	{"umbrella", drawUmbrella},
	{"flower", drawFlower},
	{"banana", drawBanana},
	{"chair", drawChair},
	{"table", drawTable},
	{"cookie", drawCookie},
	{"cloud", drawCloud},
	{"mountain", drawMountain},
	{"river", drawRiver},
	{"computer", drawComputer},
	{"cat", drawCat},
	{"dog", drawDog},
	{"shoe", drawShoe},
	{"guitar", drawGuitar},
	{"pencil", drawPencil},
}

// Sequence returns the stroke events that draw word. The result depends only on word.
func Sequence(word string) []models.StrokeEvent {
	w := strings.ToLower(strings.TrimSpace(word))
	p := newPen()

	for _, t := range templates {
		if t.word == w {
			t.draw(p)
			return p.events
		}
	}
	for _, t := range templates {
		if w != "" && strings.Contains(w, t.word) {
			t.draw(p)
			return p.events
		}
	}
	p.spiral()
	return p.events
}

// HasTemplate reports whether word is drawn by a dedicated template rather than the spiral.
func HasTemplate(word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, t := range templates {
		if w != "" && strings.Contains(w, t.word) {
			return true
		}
	}
	return false
}

func drawSun(p *pen) {
	p.ink("#facc15").up()
	p.stroke(func() { p.circle(cx, cy, 40, 32) })
	p.ink("#f97316")
	for i := 0; i < 8; i++ {
		a := 2 * math.Pi * float64(i) / 8
		p.stroke(func() { p.line(cx+40*math.Cos(a), cy+40*math.Sin(a), cx+70*math.Cos(a), cy+70*math.Sin(a)) })
	}
}

func drawMoon(p *pen) {
	p.ink("#e5e7eb").up()
	p.stroke(func() {
		p.arc(cx, cy, 80, math.Pi/2, 3*math.Pi/2, 24)
		p.ellipseArc(cx, cy, 40, 80, 3*math.Pi/2, math.Pi/2, 24)
	})
}

func drawBall(p *pen) {
	p.ink("#ef4444").up()
	p.stroke(func() { p.circle(cx, cy, 45, 32) })
}

func drawPizza(p *pen) {
	const r = 80.0
	p.ink("#f97316").up()
	p.stroke(func() {
		p.poly([2]float64{cx, cy - r}, [2]float64{cx - r, cy + r*0.3}, [2]float64{cx + r, cy + r*0.3}, [2]float64{cx, cy - r})
	})
	p.ink("#b91c1c")
	for _, c := range [][2]float64{{cx - 20, cy - 10}, {cx + 15, cy}, {cx, cy + 15}} {
		p.stroke(func() { p.circle(c[0], c[1], 6, 10) })
	}
}

func drawHouse(p *pen) {
	const w, h = 160.0, 110.0
	x := cx - w/2.0
	p.ink(BaseColor).up()
	p.stroke(func() { p.rect(x, cy, w, h) })
	p.ink("#b91c1c")
	p.stroke(func() { p.poly([2]float64{x, cy}, [2]float64{cx, cy - 80}, [2]float64{x + w, cy}) })
	p.ink("#4b5563")
	p.stroke(func() { p.rect(cx-20, cy+40, 40, 70) })
}

func drawTree(p *pen) {
	p.ink("#92400e").up()
	p.stroke(func() { p.rect(cx-15, cy+10, 30, 80) })
	p.ink("#22c55e")
	p.stroke(func() { p.circle(cx, cy-10, 40, 32) })
	p.stroke(func() { p.circle(cx-25, cy, 30, 18) })
	p.stroke(func() { p.circle(cx+25, cy, 30, 18) })
}

func drawCar(p *pen) {
	const w, h = 160.0, 50.0
	p.ink(BaseColor).up()
	p.stroke(func() { p.rect(cx-w/2, cy, w, h) })
	p.stroke(func() { p.rect(cx-40, cy-30, 80, 30) })
	p.ink("#111827")
	for _, dx := range []float64{-60, 60} {
		p.stroke(func() { p.circle(cx+dx, cy+h+18, 18, 16) })
	}
}

func drawTrain(p *pen) {
	p.ink(BaseColor).up()
	p.stroke(func() { p.rect(cx-120, cy-30, 60, 60) })
	p.ink("#10b981")
	p.stroke(func() { p.rect(cx-60, cy-20, 60, 50) })
	p.ink("#f97316")
	p.stroke(func() { p.rect(cx, cy-30, 80, 60) })
	p.ink("#111827")
	for _, dx := range []float64{-95, -35, 25, 65} {
		p.stroke(func() { p.circle(cx+dx, cy+40, 14, 12) })
	}
}

func drawBook(p *pen) {
	const w, h = 140.0, 90.0
	p.ink("#10b981").up()
	p.stroke(func() { p.rect(cx-w/2, cy-h/2, w, h) })
	p.ink("#111827")
	p.stroke(func() { p.line(cx, cy-h/2, cx, cy+h/2) })
}

func drawPhone(p *pen) {
	const w, h = 80.0, 150.0
	x, y := cx-w/2, cy-h/2
	p.ink("#111827").up()
	p.stroke(func() { p.rect(x, y, w, h) })
	p.ink("#0ea5e9")
	p.stroke(func() { p.rect(x+8, y+12, w-16, h-40) })
}

func drawCamera(p *pen) {
	const w, h = 140.0, 80.0
	p.ink("#374151").up()
	p.stroke(func() { p.rect(cx-w/2, cy-h/2, w, h) })
	p.stroke(func() { p.rect(cx-50, cy-h/2-15, 30, 15) })
	p.ink("#fbbf24")
	p.stroke(func() { p.circle(cx, cy, 28, 20) })
}

func drawAirplane(p *pen) {
	const ry = 90.0
	p.ink("#e5e7eb").up()
	p.stroke(func() { p.ellipse(cx, cy, 30, ry, 40) })
	p.ink("#6b7280")
	for _, side := range []float64{-1, 1} {
		p.stroke(func() {
			p.poly([2]float64{cx + side*120, cy}, [2]float64{cx + side*20, cy - 10},
				[2]float64{cx + side*20, cy + 10}, [2]float64{cx + side*120, cy})
		})
	}
	p.stroke(func() {
		p.poly([2]float64{cx, cy + ry - 20}, [2]float64{cx - 30, cy + ry + 30},
			[2]float64{cx + 30, cy + ry + 30}, [2]float64{cx, cy + ry - 20})
	})
}

func drawRocket(p *pen) {
	const w, h = 60.0, 160.0
	x, y := cx-w/2, cy-h/2
	p.ink("#e5e7eb").up()
	p.stroke(func() { p.rect(x, y, w, h) })
	p.ink("#ef4444")
	p.stroke(func() { p.poly([2]float64{x, y}, [2]float64{cx, y - 40}, [2]float64{x + w, y}) })
	p.ink("#f97316")
	p.stroke(func() { p.poly([2]float64{x + 10, y + h}, [2]float64{cx, y + h + 35}, [2]float64{x + w - 10, y + h}) })
}

func drawFish(p *pen) {
	const length = 140.0
	left, right := cx-length/2, cx+length/2
	top, bottom := cy-25.0, cy+25.0
	p.ink("#0ea5e9").up()
	p.stroke(func() {
		p.poly([2]float64{left, cy}, [2]float64{cx, top}, [2]float64{right, cy}, [2]float64{cx, bottom}, [2]float64{left, cy})
	})
	p.stroke(func() {
		p.poly([2]float64{left, cy}, [2]float64{left - 15, cy - 18}, [2]float64{left - 40, cy},
			[2]float64{left - 15, cy + 18}, [2]float64{left, cy})
	})
	p.stroke(func() { p.line(cx-length*0.3, cy, cx+length*0.3, cy) })
	p.stroke(func() { p.circle(cx+length*0.25, cy-5, 3, 8) })
}

func drawUmbrella(p *pen) {
	const r = 110.0
	p.ink("#ec4899").up()
	p.stroke(func() { p.arc(cx, cy, r, math.Pi, 2*math.Pi, 40) })
	for _, ox := range []float64{-82.5, -27.5, 27.5, 82.5} {
		p.stroke(func() { p.arc(cx+ox, cy, 27.5, math.Pi, 0, 12) })
	}
	p.ink("#111827")
	p.stroke(func() {
		p.line(cx, cy, cx, cy+95)
		p.arc(cx-15, cy+95, 15, 0, math.Pi, 12)
	})
}

func drawFlower(p *pen) {
	p.ink("#22c55e").up()
	p.stroke(func() { p.line(cx, cy+12, cx, cy+130) })
	p.stroke(func() { p.ellipse(cx+20, cy+80, 20, 8, 16) })
	p.ink("#facc15")
	p.stroke(func() { p.circle(cx, cy, 12, 12) })
	p.ink("#f97316")
	for i := 0; i < 6; i++ {
		a := 2 * math.Pi * float64(i) / 6
		p.stroke(func() { p.circle(cx+30*math.Cos(a), cy+30*math.Sin(a), 16, 16) })
	}
}

func drawBanana(p *pen) {
	const outer, inner, shift = 140.0, 110.0, 18.0
	p.ink("#facc15").up()
	p.stroke(func() { p.arc(cx, cy, outer, 0, math.Pi, 32) })
	p.ink("#fbbf24")
	p.stroke(func() { p.arc(cx, cy+shift, inner, 0, math.Pi, 32) })
	p.ink("#facc15")
	p.stroke(func() {
		p.line(cx-outer, cy, cx-inner, cy+shift)
		p.line(cx+outer, cy, cx+inner, cy+shift)
	})
}

func drawChair(p *pen) {
	seat := cy + 20.0
	front, back := cx-40.0, cx+10.0
	p.ink("#6b7280").up()
	p.stroke(func() {
		p.line(front, seat, back, seat)
		p.line(front, seat, front, seat+80)
		p.line(back, seat, back, seat+90)
		p.line(back, seat, back, seat-80)
	})
}

func drawTable(p *pen) {
	p.ink("#4b5563").up()
	p.stroke(func() { p.line(cx-150, cy, cx+150, cy) })
	for _, dx := range []float64{-80, 80} {
		p.stroke(func() { p.line(cx+dx, cy, cx+dx, cy+80) })
	}
}

func drawCookie(p *pen) {
	p.ink("#eab308").up()
	p.stroke(func() { p.circle(cx, cy, 45, 24) })
	p.ink("#b45309")
	for _, c := range [][2]float64{{cx - 15, cy - 10}, {cx + 10, cy - 5}, {cx - 2, cy + 18}} {
		p.stroke(func() { p.circle(c[0], c[1], 4, 8) })
	}
}

func drawCloud(p *pen) {
	p.ink("#e5e7eb").up()
	p.stroke(func() { p.circle(cx-35, cy, 35, 18) })
	p.stroke(func() { p.circle(cx, cy-15, 45, 18) })
	p.stroke(func() { p.circle(cx+35, cy, 35, 18) })
}

func drawMountain(p *pen) {
	p.ink("#6b7280").up()
	p.stroke(func() {
		p.poly([2]float64{cx - 120, cy + 70}, [2]float64{cx, cy - 80}, [2]float64{cx + 120, cy + 70}, [2]float64{cx - 120, cy + 70})
	})
	p.ink("#f8fafc")
	p.stroke(func() { p.poly([2]float64{cx - 30, cy - 42}, [2]float64{cx - 10, cy - 30}, [2]float64{cx + 10, cy - 42}) })
}

func drawRiver(p *pen) {
	p.ink("#0ea5e9").up()
	p.stroke(func() { p.wave(cx-150, cy-80, cx+150, cy+80, 4, 20) })
	p.stroke(func() { p.wave(cx-150, cy-40, cx+150, cy+120, 4, 20) })
}

func drawComputer(p *pen) {
	const w, h, pad = 260.0, 140.0, 15.0
	x, y := cx-w/2, cy-h/2
	p.ink("#000000").up()
	p.stroke(func() { p.rect(x, y, w, h) })
	p.stroke(func() { p.rect(x+pad, y+pad, w-2*pad, h-2*pad) })
	p.stroke(func() {
		p.poly([2]float64{cx, y + h}, [2]float64{cx - 35, y + h + 60}, [2]float64{cx + 35, y + h + 60}, [2]float64{cx, y + h})
	})
}

func drawCat(p *pen) {
	const r = 60.0
	p.ink("#000000").up()
	p.stroke(func() { p.circle(cx, cy, r, 40) })
	for _, side := range []float64{-1, 1} {
		p.stroke(func() {
			p.poly([2]float64{cx + side*35, cy - r + 8}, [2]float64{cx + side*17.5, cy - r - 40},
				[2]float64{cx + side*8.75, cy - r + 2}, [2]float64{cx + side*35, cy - r + 8})
		})
		p.stroke(func() { p.circle(cx+side*18, cy-5, 3, 8) })
	}
	for _, dy := range []float64{10, 20, 30} {
		p.stroke(func() { p.line(cx-8, cy+dy, cx-45, cy+dy+(dy-20)) })
		p.stroke(func() { p.line(cx+8, cy+dy, cx+45, cy+dy+(dy-20)) })
	}
}

func drawDog(p *pen) {
	const w, h, head = 180.0, 80.0, 70.0
	x := cx - w/2
	p.ink("#000000").up()
	p.stroke(func() { p.rect(x, cy, w, h) })
	p.stroke(func() { p.rect(x, cy-head, head, head) })
	for _, ex := range []float64{x + 10, x + head - 30} {
		p.stroke(func() { p.poly([2]float64{ex, cy - head}, [2]float64{ex + 10, cy - head - 25}, [2]float64{ex + 20, cy - head}) })
	}
	for _, dx := range []float64{-60, -20, 20, 60} {
		p.stroke(func() { p.rect(cx+dx-10, cy+h, 20, 40) })
	}
	p.stroke(func() {
		p.poly([2]float64{x + w, cy + 20}, [2]float64{x + w + 40, cy + 5}, [2]float64{x + w, cy + 30}, [2]float64{x + w, cy + 20})
	})
}

func drawShoe(p *pen) {
	base := cy + 40.0
	toe, heel := cx-130.0, cx+80.0
	p.ink("#000000").up()
	p.stroke(func() { p.rect(toe, base-25, heel-toe, 25) })
	p.stroke(func() { p.line(heel, base-25, heel, base-80) })
	p.stroke(func() { p.line(toe+20, base-25, heel, base-80) })
	p.stroke(func() { p.ellipse(heel, base-80, 45, 12, 28) })
}

func drawGuitar(p *pen) {
	p.ink("#f59e0b").up()
	p.stroke(func() { p.circle(cx-20, cy+40, 45, 24) })
	p.stroke(func() { p.circle(cx-20, cy-25, 32, 20) })
	p.ink("#111827")
	p.stroke(func() { p.circle(cx-20, cy+30, 12, 10) })
	p.ink("#6b7280")
	p.stroke(func() { p.rect(cx-28, cy-170, 16, 115) })
	p.stroke(func() { p.rect(cx-34, cy-200, 28, 30) })
}

func drawPencil(p *pen) {
	const w, h = 36.0, 200.0
	x, y := cx-w/2, cy-h/2
	p.ink("#f59e0b").up()
	p.stroke(func() { p.rect(x, y, w, h) })
	p.ink("#fca5a5")
	p.stroke(func() { p.rect(x, y-25, w, 25) })
	p.ink("#92400e")
	p.stroke(func() { p.poly([2]float64{x, y + h}, [2]float64{cx, y + h + 45}, [2]float64{x + w, y + h}) })
}
