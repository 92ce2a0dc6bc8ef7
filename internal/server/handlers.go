package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lessonforge/lessonforge/internal/ai"
	"github.com/lessonforge/lessonforge/internal/export"
	"github.com/lessonforge/lessonforge/internal/lesson"
)

const (
	generationTemperature = 0.8
	persistTimeout        = 10 * time.Second
)

// handleGenerate runs the full generation pipeline: prompt, gateway call,
// extraction, and (for authenticated callers) persistence. Persistence
// failures are logged and swallowed; the generated plan is returned either
// way.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req lesson.GenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Topic == "" || req.Subject == "" {
		writeError(w, http.StatusBadRequest, "Topic and subject are required")
		return
	}

	slog.Info("generating lesson plan",
		"topic", req.Topic,
		"subject", req.Subject,
		"grade", req.Grade,
		"extended", req.Extended,
		"has_pdf", req.PDFContent != "",
	)

	system, user := lesson.BuildPrompt(req)
	resp, err := s.ai.Complete(r.Context(), ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: generationTemperature,
	})
	if err != nil {
		slog.Error("gateway completion failed", "error", err)
		status, message := generationError(err)
		writeError(w, status, message)
		return
	}

	doc, err := lesson.ExtractDocument(resp.Content)
	if err != nil {
		slog.Error("failed to extract lesson plan", "error", err)
		status, message := generationError(err)
		writeError(w, status, message)
		return
	}

	s.persist(r, *doc, req)

	if token := r.Header.Get("X-Request-Token"); token != "" {
		w.Header().Set("X-Request-Token", token)
	}
	writeJSON(w, http.StatusOK, doc)
}

// persist saves the generated plan for the authenticated caller. Anonymous
// callers are skipped silently; a store error never fails the request.
func (s *Server) persist(r *http.Request, doc lesson.Document, req lesson.GenerationRequest) {
	if s.store == nil {
		return
	}
	ownerID, ok := s.ownerFromRequest(r)
	if !ok {
		slog.Debug("no authenticated user, skipping persistence")
		return
	}

	// The PDF text can be large and is only prompt input; it is not part
	// of the stored metadata.
	meta := req
	meta.PDFContent = ""

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), persistTimeout)
	defer cancel()

	rec, err := s.store.Save(ctx, ownerID, doc, meta)
	if err != nil {
		slog.Error("failed to save lesson plan", "owner", ownerID, "error", err)
		return
	}
	slog.Info("lesson plan saved", "id", rec.ID, "owner", ownerID)
}

type imagesRequest struct {
	Slides json.RawMessage `json:"slides"`
	Topic  string          `json:"topic"`
}

type imagesResponse struct {
	Images []lesson.SlideImageResult `json:"images"`
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	var req imagesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// An empty array is a valid zero-slide batch; only a missing, null, or
	// non-array value is rejected.
	if len(req.Slides) == 0 || string(req.Slides) == "null" {
		writeError(w, http.StatusBadRequest, "Slides array is required")
		return
	}
	var slides []lesson.Slide
	if err := json.Unmarshal(req.Slides, &slides); err != nil {
		writeError(w, http.StatusBadRequest, "Slides array is required")
		return
	}
	if !s.aiReady {
		writeError(w, http.StatusInternalServerError, "AI service not configured")
		return
	}

	slog.Info("generating slide images", "slides", len(slides), "topic", req.Topic)

	results := s.images.GenerateSlideImages(r.Context(), slides, req.Topic)
	writeJSON(w, http.StatusOK, imagesResponse{Images: results})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.ownerFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusOK, []lesson.StoredRecord{})
		return
	}

	// A broken store degrades to an empty dashboard, never an error page.
	records, err := s.store.ListByOwner(r.Context(), ownerID)
	if err != nil {
		slog.Error("failed to list lesson plans", "owner", ownerID, "error", err)
		writeJSON(w, http.StatusOK, []lesson.StoredRecord{})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.ownerFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusNotFound, "Lesson plan not found")
		return
	}

	rec, err := s.store.Get(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, lesson.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Lesson plan not found")
			return
		}
		slog.Error("failed to load lesson plan", "owner", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load lesson plan")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.ownerFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusNotFound, "Lesson plan not found")
		return
	}

	if err := s.store.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		if errors.Is(err, lesson.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Lesson plan not found")
			return
		}
		slog.Error("failed to delete lesson plan", "owner", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete lesson plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exportRequest struct {
	Document lesson.Document           `json:"document"`
	Images   []lesson.SlideImageResult `json:"images,omitempty"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Document.Title == "" {
		writeError(w, http.StatusBadRequest, "Document is required")
		return
	}

	data, err := export.EncodePPTX(req.Document, req.Images)
	if err != nil {
		slog.Error("failed to encode presentation", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build presentation")
		return
	}

	sendAttachment(w, data,
		export.SanitizeFilename(req.Document.Title)+".pptx",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation")
}

func (s *Server) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Document.Title == "" {
		writeError(w, http.StatusBadRequest, "Document is required")
		return
	}

	data, err := export.EncodeWorksheet(req.Document)
	if err != nil {
		slog.Error("failed to encode worksheet", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build worksheet")
		return
	}

	sendAttachment(w, data,
		export.SanitizeFilename(req.Document.Title)+".xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(); err != nil {
			slog.Error("readiness check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func sendAttachment(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write attachment", "error", err)
	}
}

// generationError maps pipeline failures to the client-facing status and
// message.
func generationError(err error) (int, string) {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return http.StatusInternalServerError, "AI service not configured"
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment."
	case errors.Is(err, ai.ErrQuotaExhausted):
		return http.StatusPaymentRequired, "AI credits depleted. Please add credits to continue."
	case errors.Is(err, lesson.ErrMalformedResponse), errors.Is(err, lesson.ErrSchemaViolation):
		return http.StatusInternalServerError, "Failed to parse lesson plan data"
	default:
		return http.StatusInternalServerError, "Failed to generate lesson plan"
	}
}
