package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/infra/metrics"
	"lecture-quiz/internal/usecase"
)

// handleUpload accepts the multipart upload and queues the pipeline.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Slack on top of the configured limit covers multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+(1<<20))

	file, header, err := r.FormFile("video")
	if err != nil {
		metrics.IncUpload("rejected")
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	duration, err := parseDuration(r.FormValue("duration"))
	if err != nil || strings.TrimSpace(r.FormValue("title")) == "" {
		metrics.IncUpload("rejected")
		writeError(w, http.StatusBadRequest, "Title and duration are required")
		return
	}

	v, err := s.uploadUC.Upload(r.Context(), usecase.UploadInput{
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Title:       r.FormValue("title"),
		Duration:    duration,
	})
	if err != nil {
		code := statusFor(err)
		if code == http.StatusBadRequest {
			metrics.IncUpload("rejected")
		} else {
			metrics.IncUpload("failed")
		}
		writeError(w, code, uploadErrorMessage(err))
		return
	}

	metrics.IncUpload("accepted")
	metrics.ObserveUploadBytes(header.Size)

	if err := s.scheduler.Schedule(v.ID); err != nil {
		// The record exists; the video just stays pending until re-queued.
		s.log.Error().Err(err).Str("video_id", v.ID).Msg("could not queue pipeline run")
	}

	writeData(w, http.StatusCreated, map[string]interface{}{
		"videoId": v.ID,
		"title":   v.Title,
		"status":  v.Status,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := s.statusUC.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error checking status")
		return
	}
	writeData(w, http.StatusOK, view)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.resultsUC.Assemble(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Video not found")
		case errors.Is(err, domain.ErrNotReady):
			writeError(w, http.StatusConflict, "Video processing not completed yet")
		default:
			writeError(w, http.StatusInternalServerError, "Server error fetching results")
		}
		return
	}
	writeData(w, http.StatusOK, resultsPayload(res))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := r.URL.Query().Get("format")

	f, err := s.exportUC.Export(r.Context(), id, format)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownFormat):
			writeError(w, http.StatusBadRequest, "Invalid export format")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Video not found")
		case errors.Is(err, domain.ErrNotReady):
			writeError(w, http.StatusConflict, "Video processing not completed yet")
		default:
			writeError(w, http.StatusInternalServerError, "Server error during export")
		}
		return
	}

	metrics.IncExport(format)
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", f.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Data)
}

// resultsPayload shapes the results body: video metadata plus segments
// each carrying their ordered questions.
func resultsPayload(res *usecase.AssembledResult) map[string]interface{} {
	segments := make([]map[string]interface{}, 0, len(res.Segments))
	for _, sq := range res.Segments {
		questions := make([]map[string]interface{}, 0, len(sq.Questions))
		for _, q := range sq.Questions {
			questions = append(questions, map[string]interface{}{
				"id":             q.ID,
				"transcript_id":  q.TranscriptID,
				"question_text":  q.QuestionText,
				"options":        q.Options,
				"correct_option": q.CorrectOption,
				"created_at":     q.CreatedAt,
			})
		}
		segments = append(segments, map[string]interface{}{
			"id":            sq.Segment.ID,
			"video_id":      sq.Segment.VideoID,
			"segment_start": sq.Segment.SegmentStart,
			"segment_end":   sq.Segment.SegmentEnd,
			"text":          sq.Segment.Text,
			"created_at":    sq.Segment.CreatedAt,
			"questions":     questions,
		})
	}
	return map[string]interface{}{
		"video": map[string]interface{}{
			"id":         res.Video.ID,
			"title":      res.Video.Title,
			"duration":   res.Video.Duration,
			"status":     res.Video.Status,
			"created_at": res.Video.CreatedAt,
		},
		"segments": segments,
	}
}

func parseDuration(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("duration missing")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("bad duration %q", raw)
	}
	return int(f), nil
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrBadContentType):
		return "Only MP4 files are allowed"
	case errors.Is(err, domain.ErrFileTooLarge):
		return "File exceeds the maximum allowed size"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Title and duration are required"
	default:
		return "Failed to save video information"
	}
}
