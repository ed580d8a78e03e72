package model

import "time"

// WindowSeconds is the fixed transcript window length. The last window
// of a video may be shorter.
const WindowSeconds = 300

// TranscriptSegment is a fixed-duration slice of the transcript and the
// unit of question generation. Segments partition [0, duration)
// contiguously and are immutable once written.
type TranscriptSegment struct {
	ID           string
	VideoID      string
	SegmentStart int // seconds, inclusive
	SegmentEnd   int // seconds, exclusive
	Text         string
	CreatedAt    time.Time
}

// TranscriptChunk is a timed piece of raw transcriber output, before
// windowing. Start/End are seconds from the beginning of the video.
type TranscriptChunk struct {
	Start float64
	End   float64
	Text  string
}

// SegmentWindows splits a video of the given duration into contiguous
// WindowSeconds windows: [0,300), [300,600), ... The last window ends
// exactly at the duration. A 600-second video yields exactly two
// windows.
func SegmentWindows(duration int) []TranscriptSegment {
	if duration <= 0 {
		return nil
	}
	var out []TranscriptSegment
	for start := 0; start < duration; start += WindowSeconds {
		end := start + WindowSeconds
		if end > duration {
			end = duration
		}
		out = append(out, TranscriptSegment{SegmentStart: start, SegmentEnd: end})
	}
	return out
}

// BucketChunks assigns each transcript chunk to the window containing
// its start time and concatenates the chunk texts in order. Windows
// that received no chunks keep an empty text.
func BucketChunks(windows []TranscriptSegment, chunks []TranscriptChunk) []TranscriptSegment {
	out := make([]TranscriptSegment, len(windows))
	copy(out, windows)
	for _, c := range chunks {
		idx := int(c.Start) / WindowSeconds
		if idx < 0 || idx >= len(out) {
			// Chunks past the reported duration land in the last window.
			if len(out) == 0 {
				continue
			}
			idx = len(out) - 1
		}
		if out[idx].Text != "" {
			out[idx].Text += " "
		}
		out[idx].Text += c.Text
	}
	return out
}
