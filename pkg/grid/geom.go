package grid

import (
	"fmt"
	"math"
)

// tolerance absorbs float rounding when converting pixel values to cell
// indices, expressed in cells.
const tolerance = 1e-9

// maxCellIndex bounds the cell indices the engine converts to int.
const maxCellIndex = 1 << 30

// Point is a pixel position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Size is a pixel extent.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.W, s.H) }

// Cells is an extent measured in grid cells.
type Cells struct {
	W int `json:"width"`
	H int `json:"height"`
}

func (c Cells) String() string { return fmt.Sprintf("%dx%d", c.W, c.H) }

// Px converts c into a pixel size at the given cell size.
func (c Cells) Px(cellSize float64) Size {
	return Size{W: float64(c.W) * cellSize, H: float64(c.H) * cellSize}
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.Origin.X + r.Size.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Origin.Y + r.Size.H }

// Within reports whether r lies entirely inside a canvas of the given size
// anchored at the origin.
func (r Rect) Within(canvas Size) bool {
	return Fits(r.Origin.X, r.Size.W, canvas.W) && Fits(r.Origin.Y, r.Size.H, canvas.H)
}

// Fits reports whether the span [origin, origin+length] lies within
// [0, extent], allowing for float rounding at the far edge.
func Fits(origin, length, extent float64) bool {
	slack := tolerance * math.Max(1, extent)
	return origin >= 0 && origin+length <= extent+slack
}

// clamp restricts v to [lo, hi]. When hi < lo the lower bound wins.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, math.Max(lo, hi)))
}

// cellFloor returns the index of the cell containing v, treating values a
// hair below a boundary as on it.
func cellFloor(v, cellSize float64) int {
	return int(math.Floor(v/cellSize + tolerance))
}

// inCellRange reports whether v lies within maxCellIndex cells of the origin.
func inCellRange(v, cellSize float64) bool {
	return math.Abs(v/cellSize) <= maxCellIndex
}

// cellCeil returns the exclusive end index for a span ending at v.
func cellCeil(v, cellSize float64) int {
	return int(math.Ceil(v/cellSize - tolerance))
}
