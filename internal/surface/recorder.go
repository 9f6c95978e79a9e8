package surface

// OpKind names a recorded draw call.
type OpKind string

const (
	OpFill               OpKind = "fill"
	OpFillCircle         OpKind = "fill-circle"
	OpStrokeCircle       OpKind = "stroke-circle"
	OpStrokeLine         OpKind = "stroke-line"
	OpStrokeGradientLine OpKind = "stroke-gradient-line"
	OpFillRadial         OpKind = "fill-radial"
	OpFillRibbon         OpKind = "fill-ribbon"
	OpStrokePolyline     OpKind = "stroke-polyline"
)

// Op is one recorded draw call.
type Op struct {
	Kind  OpKind
	Blend Blend
	X, Y  float64
	R     float64
	Color RGBA
	Stops []Stop
}

// Recorder is a Surface that records draw calls instead of rasterizing.
type Recorder struct {
	W, H  int
	Blend Blend
	Ops   []Op
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Resize(w, h int) { r.W, r.H = w, h }

func (r *Recorder) SetBlend(b Blend) { r.Blend = b }

func (r *Recorder) add(op Op) {
	op.Blend = r.Blend
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Fill(c RGBA) { r.add(Op{Kind: OpFill, Color: c}) }

func (r *Recorder) FillCircle(x, y, rad float64, c RGBA) {
	r.add(Op{Kind: OpFillCircle, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, rad, _ float64, c RGBA) {
	r.add(Op{Kind: OpStrokeCircle, X: x, Y: y, R: rad, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, _, _, _ float64, c RGBA) {
	r.add(Op{Kind: OpStrokeLine, X: x0, Y: y0, Color: c})
}

func (r *Recorder) StrokeGradientLine(x0, y0, _, _, _ float64, from, to RGBA) {
	r.add(Op{Kind: OpStrokeGradientLine, X: x0, Y: y0, Color: from, Stops: []Stop{{0, from}, {1, to}}})
}

func (r *Recorder) FillRadial(x, y, rad float64, stops []Stop) {
	r.add(Op{Kind: OpFillRadial, X: x, Y: y, R: rad, Stops: append([]Stop(nil), stops...)})
}

func (r *Recorder) FillRibbon(top []Point, bottom float64, g VerticalGradient) {
	r.add(Op{Kind: OpFillRibbon, Y: bottom, Stops: append([]Stop(nil), g.Stops...)})
}

func (r *Recorder) StrokePolyline(pts []Point, _ float64, c RGBA) {
	op := Op{Kind: OpStrokePolyline, Color: c}
	if len(pts) > 0 {
		op.X, op.Y = pts[0].X, pts[0].Y
	}
	r.add(op)
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
