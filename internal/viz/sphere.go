package viz

import (
	"math"
	"sort"

	"github.com/san-kum/qcviz/internal/bloch"
)

// Camera projects Bloch-space points (z up) to a 2D viewport.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

// NewCamera looks at the sphere slightly from above and to the side.
func NewCamera() *Camera {
	return &Camera{Distance: 50, RotX: 0.35, RotY: -0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(4, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.25, c.Zoom/1.2) }

// view maps Bloch coordinates into camera space: x right, y up, z toward
// the viewer, after the azimuth and tilt rotations.
func (c *Camera) view(p bloch.Vec3) bloch.Vec3 {
	v := bloch.Vec3{X: p.X, Y: p.Z, Z: -p.Y}
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	v.X, v.Z = v.X*cy+v.Z*sy, -v.X*sy+v.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	v.Y, v.Z = v.Y*cx-v.Z*sx, v.Y*sx+v.Z*cx
	return v.Scale(c.Zoom)
}

// Viewport is a rectangle of canvas sub-pixels.
type Viewport struct {
	X, Y, W, H int
}

// Project converts p to viewport pixel coordinates and returns its depth.
func (c *Camera) Project(p bloch.Vec3, vp Viewport) (int, int, float64) {
	v := c.view(p)
	scale := c.Distance / (c.Distance - v.Z)
	r := float64(min(vp.W, vp.H)) / 2.4
	sx := vp.X + vp.W/2 + int(math.Round(v.X*scale*r))
	sy := vp.Y + vp.H/2 - int(math.Round(v.Y*scale*r))
	return sx, sy, v.Z
}

type Edge struct {
	Start, End bloch.Vec3
	Pen        Pen
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{} }

func (w *Wireframe) AddEdge(s, e bloch.Vec3, p Pen) { w.Edges = append(w.Edges, Edge{s, e, p}) }

// AddCircle adds a great circle spanned by the unit vectors u and v.
func (w *Wireframe) AddCircle(u, v bloch.Vec3, segments int, p Pen) {
	prev := u
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		cur := u.Scale(math.Cos(a)).Add(v.Scale(math.Sin(a)))
		w.AddEdge(prev, cur, p)
		prev = cur
	}
}

// SphereWireframe is the unit sphere outline: equator, two meridians and
// the three axes.
func SphereWireframe() *Wireframe {
	w := NewWireframe()
	x, y, z := bloch.PlusX, bloch.Vec3{Y: 1}, bloch.North
	w.AddCircle(x, y, 48, PenGrid)
	w.AddCircle(x, z, 48, PenGrid)
	w.AddCircle(y, z, 48, PenGrid)
	w.AddEdge(x.Scale(-1), x, PenAxis)
	w.AddEdge(y.Scale(-1), y, PenAxis)
	w.AddEdge(bloch.South, bloch.North, PenAxis)
	return w
}

// Render draws the wireframe back to front.
func Render(c *Canvas, w *Wireframe, cam *Camera, vp Viewport) {
	if c == nil || w == nil || cam == nil {
		return
	}
	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
		pen            Pen
	}
	proj := make([]projected, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1 := cam.Project(e.Start, vp)
		x2, y2, d2 := cam.Project(e.End, vp)
		proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2, e.Pen})
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.SetPen(e.pen)
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// DrawBloch draws the sphere, the trail of earlier vectors and the current
// state vector from the origin into vp.
func DrawBloch(c *Canvas, cam *Camera, vp Viewport, v bloch.Vec3, trail []bloch.Vec3, pen Pen) {
	Render(c, SphereWireframe(), cam, vp)

	c.SetPen(PenTrail)
	for _, p := range trail {
		x, y, _ := cam.Project(p, vp)
		c.Set(x, y)
	}

	ox, oy, _ := cam.Project(bloch.Vec3{}, vp)
	tx, ty, _ := cam.Project(v, vp)
	c.SetPen(pen)
	c.DrawLine(ox, oy, tx, ty)
	c.DrawDot(tx, ty, 1)
}

// Split divides the canvas into n side-by-side viewports.
func Split(c *Canvas, n int) []Viewport {
	w, h := c.Size()
	if n < 1 {
		n = 1
	}
	out := make([]Viewport, n)
	for i := range out {
		out[i] = Viewport{X: i * w / n, Y: 0, W: w / n, H: h}
	}
	return out
}
