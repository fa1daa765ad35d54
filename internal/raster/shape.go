package raster

import (
	"image"
	"math"
)

// Point is a position in surface pixel space. Pixel (x, y) covers the unit
// square [x, x+1) x [y, y+1).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point    { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point  { return Point{p.X * k, p.Y * k} }
func (p Point) Len() float64         { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// Shape is a closed convex outline. Non-convex marks are built from several
// shapes and composited as their union.
type Shape []Point

// Bounds returns the smallest integer rectangle containing the outline.
func (sh Shape) Bounds() image.Rectangle {
	if len(sh) == 0 {
		return image.Rectangle{}
	}
	minX, minY := sh[0].X, sh[0].Y
	maxX, maxY := minX, minY
	for _, p := range sh[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// Pixel is the unit square of pixel (x, y).
func Pixel(x, y int) Shape {
	fx, fy := float64(x), float64(y)
	return Shape{{fx, fy}, {fx + 1, fy}, {fx + 1, fy + 1}, {fx, fy + 1}}
}

// Rect is a w x h rectangle centred on c and rotated by angle radians.
func Rect(c Point, w, h, angle float64) Shape {
	hw, hh := w/2, h/2
	corners := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	sh := make(Shape, 4)
	for i, p := range corners {
		sh[i] = p.Rotate(angle).Add(c)
	}
	return sh
}

// Circle approximates a disc of radius r centred on c.
func Circle(c Point, r float64) Shape {
	return Ellipse(c, r, r, 0)
}

// Ellipse approximates an ellipse with radii rx, ry centred on c and rotated
// by angle radians.
func Ellipse(c Point, rx, ry, angle float64) Shape {
	n := arcSegments(math.Max(rx, ry))
	sh := make(Shape, n)
	for i := range sh {
		t := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(t)
		sh[i] = Point{rx * cos, ry * sin}.Rotate(angle).Add(c)
	}
	return sh
}

func arcSegments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 2))
	return min(max(n, 24), 256)
}

// Cap is the shape drawn at both ends of a line.
type Cap int

const (
	CapRound Cap = iota
	CapSquare
)

// Line returns the shapes covering a straight line of the given width from a
// to b. A round cap adds a disc at each end; a square cap extends the body by
// width/2 past each end. Consecutive lines that share an end point leave no
// gap between them.
func Line(a, b Point, width float64, lineCap Cap) []Shape {
	hw := width / 2
	d := b.Sub(a)
	length := d.Len()

	if length == 0 {
		if lineCap == CapRound {
			return []Shape{Circle(a, hw)}
		}
		return []Shape{Rect(a, width, width, 0)}
	}

	dir := d.Mul(1 / length)
	if lineCap == CapSquare {
		a = a.Sub(dir.Mul(hw))
		b = b.Add(dir.Mul(hw))
	}
	n := Point{-dir.Y, dir.X}.Mul(hw)
	body := Shape{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}

	if lineCap == CapRound {
		return []Shape{body, Circle(a, hw), Circle(b, hw)}
	}
	return []Shape{body}
}
