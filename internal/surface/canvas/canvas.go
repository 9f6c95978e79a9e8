// Package canvas implements surface.Surface on top of an ebiten image.
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	circleSegments = 48
	ribbonRows     = 8
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

var screenBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

var _ surface.Surface = (*Canvas)(nil)

// Canvas is an offscreen ebiten image that persists between frames, so the
// background fade leaves motion trails behind moving effects.
type Canvas struct {
	img   *ebiten.Image
	blend ebiten.Blend
	bg    color.Color

	vs []ebiten.Vertex
	is []uint16
}

// New allocates a canvas cleared to bg.
func New(w, h int, bg color.Color) *Canvas {
	c := &Canvas{blend: ebiten.BlendSourceOver, bg: bg}
	c.Resize(w, h)
	return c
}

// Image is the backing image, blitted to the screen by the host.
func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
	c.img.Fill(c.bg)
}

func (c *Canvas) SetBlend(b surface.Blend) {
	if b == surface.Screen {
		c.blend = screenBlend
		return
	}
	c.blend = ebiten.BlendSourceOver
}

func (c *Canvas) Fill(col surface.RGBA) {
	w, h := c.Size()
	var p vector.Path
	p.MoveTo(0, 0)
	p.LineTo(float32(w), 0)
	p.LineTo(float32(w), float32(h))
	p.LineTo(0, float32(h))
	p.Close()
	c.fillPath(&p, col)
}

func (c *Canvas) FillCircle(x, y, r float64, col surface.RGBA) {
	var p vector.Path
	p.Arc(float32(x), float32(y), float32(r), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	c.fillPath(&p, col)
}

func (c *Canvas) StrokeCircle(x, y, r, width float64, col surface.RGBA) {
	if width <= 0 || r <= 0 {
		return
	}
	var p vector.Path
	p.Arc(float32(x), float32(y), float32(r), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	c.strokePath(&p, width, col)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col surface.RGBA) {
	var p vector.Path
	p.MoveTo(float32(x0), float32(y0))
	p.LineTo(float32(x1), float32(y1))
	c.strokePath(&p, width, col)
}

func (c *Canvas) StrokePolyline(pts []surface.Point, width float64, col surface.RGBA) {
	if len(pts) < 2 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	c.strokePath(&p, width, col)
}

// StrokeGradientLine draws the line as a quad whose vertex colors carry the
// gradient; the GPU interpolates along the length.
func (c *Canvas) StrokeGradientLine(x0, y0, x1, y1, width float64, from, to surface.RGBA) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	c.vs, c.is = c.vs[:0], c.is[:0]
	c.vs = append(c.vs,
		vertex(x0+nx, y0+ny, from),
		vertex(x0-nx, y0-ny, from),
		vertex(x1+nx, y1+ny, to),
		vertex(x1-nx, y1-ny, to),
	)
	c.is = append(c.is, 0, 1, 2, 1, 3, 2)
	c.draw()
}

// FillRadial approximates a radial gradient with concentric rings whose
// vertex colors sit on the stops.
func (c *Canvas) FillRadial(x, y, r float64, stops []surface.Stop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	c.vs, c.is = c.vs[:0], c.is[:0]
	c.vs = append(c.vs, vertex(x, y, stops[0].Color))

	prevRing := -1
	for _, st := range stops {
		if st.Offset <= 0 {
			continue
		}
		base := len(c.vs)
		rr := r * math.Min(st.Offset, 1)
		for i := 0; i < circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			c.vs = append(c.vs, vertex(x+math.Cos(a)*rr, y+math.Sin(a)*rr, st.Color))
		}
		for i := 0; i < circleSegments; i++ {
			j := (i + 1) % circleSegments
			if prevRing < 0 {
				c.is = append(c.is, 0, uint16(base+i), uint16(base+j))
				continue
			}
			c.is = append(c.is,
				uint16(prevRing+i), uint16(base+i), uint16(base+j),
				uint16(prevRing+i), uint16(base+j), uint16(prevRing+j),
			)
		}
		prevRing = base
	}
	if prevRing < 0 {
		return
	}
	c.draw()
}

// FillRibbon builds a strip of columns, each subdivided into rows so the
// vertical gradient is sampled densely enough between curve and bottom.
func (c *Canvas) FillRibbon(top []surface.Point, bottom float64, g surface.VerticalGradient) {
	if len(top) < 2 {
		return
	}
	c.vs, c.is = c.vs[:0], c.is[:0]
	const stride = ribbonRows + 1
	for _, pt := range top {
		for j := 0; j <= ribbonRows; j++ {
			y := pt.Y + (bottom-pt.Y)*float64(j)/ribbonRows
			c.vs = append(c.vs, vertex(pt.X, y, g.At(y)))
		}
	}
	for i := 0; i+1 < len(top); i++ {
		a, b := i*stride, (i+1)*stride
		for j := 0; j < ribbonRows; j++ {
			c.is = append(c.is,
				uint16(a+j), uint16(b+j), uint16(b+j+1),
				uint16(a+j), uint16(b+j+1), uint16(a+j+1),
			)
		}
	}
	c.draw()
}

func (c *Canvas) fillPath(p *vector.Path, col surface.RGBA) {
	c.vs, c.is = p.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	c.paint(col)
}

func (c *Canvas) strokePath(p *vector.Path, width float64, col surface.RGBA) {
	c.vs, c.is = p.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	c.paint(col)
}

func (c *Canvas) paint(col surface.RGBA) {
	r, g, b, a := col.Normalized()
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = r
		c.vs[i].ColorG = g
		c.vs[i].ColorB = b
		c.vs[i].ColorA = a
	}
	c.draw()
}

func (c *Canvas) draw() {
	if len(c.is) == 0 {
		return
	}
	c.img.DrawTriangles(c.vs, c.is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		Blend:     c.blend,
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	})
}

func vertex(x, y float64, col surface.RGBA) ebiten.Vertex {
	r, g, b, a := col.Normalized()
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	}
}
