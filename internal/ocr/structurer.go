package ocr

import (
	"fmt"
	"sort"
	"strings"
)

// rowBandRatio: fragments whose top edges differ by no more than this share
// of the image height are treated as the same visual row.
const rowBandRatio = 0.05

// lowConfidenceMark: fragments below this confidence get an inline annotation
// so the model knows the text may be misread.
const lowConfidenceMark = 0.7

// Structurer turns an unordered bag of OCR fragments into reading-ordered
// text. It is a pure function of the document: no I/O, deterministic output.
type Structurer struct{}

func NewStructurer() *Structurer { return &Structurer{} }

// Structure returns the position-labeled text and the plain newline-joined
// text, both in reading order. An empty document yields two empty strings.
func (s *Structurer) Structure(doc *Document) (labeled string, plain string) {
	if doc == nil || len(doc.Fragments) == 0 {
		return "", ""
	}

	sorted := s.Order(doc)

	var lb, pb strings.Builder
	for i, f := range sorted {
		if i > 0 {
			lb.WriteByte('\n')
			pb.WriteByte('\n')
		}
		lb.WriteString("[")
		lb.WriteString(positionLabel(doc, f.Box))
		lb.WriteString("] ")
		lb.WriteString(f.Text)
		if f.Confidence < lowConfidenceMark {
			lb.WriteString(fmt.Sprintf(" (confidence: %.1f%%)", f.Confidence*100))
		}
		pb.WriteString(f.Text)
	}
	return lb.String(), pb.String()
}

// Order returns the document's fragments top-to-bottom, then left-to-right
// within a row band. This approximates reading order for line-wrapped,
// multi-column OCR output without true line detection. The document itself
// is not mutated.
func (s *Structurer) Order(doc *Document) []TextFragment {
	sorted := make([]TextFragment, len(doc.Fragments))
	copy(sorted, doc.Fragments)

	band := rowBandRatio * float64(doc.Height)
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Box.Y0 - sorted[j].Box.Y0
		if abs(yDiff) > int(band) {
			return yDiff < 0
		}
		return sorted[i].Box.X0 < sorted[j].Box.X0
	})
	return sorted
}

// positionLabel classifies the box center into a 3x3 grid over the image,
// vertical label first ("top-left" ... "bottom-right").
func positionLabel(doc *Document, box Rect) string {
	cx, cy := box.CenterX(), box.CenterY()

	var vertical string
	switch {
	case cy < doc.Height/3:
		vertical = "top"
	case cy < doc.Height*2/3:
		vertical = "middle"
	default:
		vertical = "bottom"
	}

	var horizontal string
	switch {
	case cx < doc.Width/3:
		horizontal = "left"
	case cx < doc.Width*2/3:
		horizontal = "center"
	default:
		horizontal = "right"
	}

	return vertical + "-" + horizontal
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
