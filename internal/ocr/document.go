package ocr

// Rect is an axis-aligned bounding box in image pixel coordinates.
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) CenterX() int { return (r.X0 + r.X1) / 2 }
func (r Rect) CenterY() int { return (r.Y0 + r.Y1) / 2 }

// TextFragment is one recognized text span with its box and confidence (0..1).
// Fragments are immutable once created.
type TextFragment struct {
	Text       string
	Box        Rect
	Confidence float64
}

// Document holds all fragments recognized from one captured image plus the
// image dimensions. Fragments are appended during recognition; after that the
// document is read-only and safe to share across pipeline stages.
type Document struct {
	Width     int
	Height    int
	Fragments []TextFragment
}

func NewDocument(width, height int) *Document {
	return &Document{Width: width, Height: height}
}

func (d *Document) AddFragment(text string, box Rect, confidence float64) {
	d.Fragments = append(d.Fragments, TextFragment{Text: text, Box: box, Confidence: confidence})
}
