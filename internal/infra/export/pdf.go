package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"lecture-quiz/internal/usecase"
)

var _ usecase.Exporter = (*PDFExporter)(nil)

// PDFExporter renders the quiz document through pdfcpu's create-from-
// JSON API: a title page followed by one page per segment holding the
// transcript and its questions.
type PDFExporter struct {
	conf *model.Configuration
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{conf: model.NewDefaultConfiguration()}
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }
func (e *PDFExporter) FileExt() string     { return ".pdf" }

// pdfcpu create-from-JSON page description.
type pdfText struct {
	Value    string    `json:"value"`
	Position []float64 `json:"position"`
	Font     pdfFont   `json:"font"`
	Width    float64   `json:"width,omitempty"`
}

type pdfFont struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDocument struct {
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

func (e *PDFExporter) Render(res *usecase.AssembledResult) ([]byte, error) {
	doc := pdfDocument{
		Origin: "upperLeft",
		Pages:  map[string]pdfPage{},
	}

	title := fmt.Sprintf("%s\n\nDuration: %s\nSegments: %d",
		res.Video.Title, clock(res.Video.Duration), len(res.Segments))
	doc.Pages["1"] = pdfPage{Content: pdfContent{Text: []pdfText{
		{Value: title, Position: []float64{72, 72}, Font: pdfFont{Name: "Helvetica-Bold", Size: 18}, Width: 450},
	}}}

	for i, sq := range res.Segments {
		var b strings.Builder
		fmt.Fprintf(&b, "Segment %d  (%s)\n\n", i+1, TimeRange(sq.Segment.SegmentStart, sq.Segment.SegmentEnd))
		b.WriteString(sq.Segment.Text)
		b.WriteString("\n\n")
		for qi, q := range sq.Questions {
			fmt.Fprintf(&b, "Q%d. %s\n", qi+1, q.QuestionText)
			for oi, opt := range q.Options {
				marker := " "
				if oi == q.CorrectOption {
					marker = "*"
				}
				fmt.Fprintf(&b, "  %s %c) %s\n", marker, 'A'+rune(oi), opt)
			}
			b.WriteString("\n")
		}
		doc.Pages[fmt.Sprintf("%d", i+2)] = pdfPage{Content: pdfContent{Text: []pdfText{
			{Value: b.String(), Position: []float64{72, 72}, Font: pdfFont{Name: "Helvetica", Size: 10}, Width: 450},
		}}}
	}

	desc, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal page description: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &out, e.conf); err != nil {
		return nil, fmt.Errorf("pdfcpu create: %w", err)
	}
	return out.Bytes(), nil
}
