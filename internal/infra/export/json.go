package export

import (
	"encoding/json"
	"fmt"
	"time"

	"lecture-quiz/internal/usecase"
)

var _ usecase.Exporter = (*JSONExporter)(nil)

// JSONExporter reshapes an assembled result set into the download
// format: per segment a human-readable time range, the transcript
// slice, and the questions with the correct answer spelled out.
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

func (e *JSONExporter) ContentType() string { return "application/json" }
func (e *JSONExporter) FileExt() string     { return ".json" }

type jsonVideo struct {
	Title     string    `json:"title"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

type jsonQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type jsonSegment struct {
	TimeRange  string         `json:"time_range"`
	Transcript string         `json:"transcript"`
	Questions  []jsonQuestion `json:"questions"`
}

type jsonDocument struct {
	Video    jsonVideo     `json:"video"`
	Segments []jsonSegment `json:"segments"`
}

func (e *JSONExporter) Render(res *usecase.AssembledResult) ([]byte, error) {
	doc := jsonDocument{
		Video: jsonVideo{
			Title:     res.Video.Title,
			Duration:  res.Video.Duration,
			CreatedAt: res.Video.CreatedAt,
		},
		Segments: make([]jsonSegment, 0, len(res.Segments)),
	}
	for _, sq := range res.Segments {
		seg := jsonSegment{
			TimeRange:  TimeRange(sq.Segment.SegmentStart, sq.Segment.SegmentEnd),
			Transcript: sq.Segment.Text,
			Questions:  make([]jsonQuestion, 0, len(sq.Questions)),
		}
		for _, q := range sq.Questions {
			seg.Questions = append(seg.Questions, jsonQuestion{
				Question:      q.QuestionText,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer(),
			})
		}
		doc.Segments = append(doc.Segments, seg)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// TimeRange renders a segment span as "M:SS - M:SS".
func TimeRange(start, end int) string {
	return fmt.Sprintf("%s - %s", clock(start), clock(end))
}

func clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
