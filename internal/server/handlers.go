package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pkg.jsn.cam/regfake/pkg/httpx"
	"pkg.jsn.cam/regfake/pkg/regfake"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) error {
	var req GenerateRequest
	if err := httpx.Decode(r, &req); err != nil {
		return err
	}
	if req.Type == "" {
		return httpx.Errorf(http.StatusBadRequest, "type required")
	}
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > s.cfg.MaxCount {
		return httpx.Errorf(http.StatusBadRequest, "count must be between 1 and %d", s.cfg.MaxCount)
	}

	requestID := uuid.New().String()
	start := time.Now()

	records, err := s.engine.GenerateBatch(r.Context(), req.Type, regfake.NewModifiers(req.Modifiers...), count, s.cfg.Workers)
	if err != nil {
		log.Printf("[SERVER] Request %s: generate %s failed: %v", requestID, req.Type, err)
		return err
	}

	log.Printf("[SERVER] Request %s: generated %d %s record(s) in %v", requestID, count, req.Type, time.Since(start))

	w.Header().Set("X-Request-ID", requestID)
	httpx.JSON(w, http.StatusOK, GenerateResponse{
		RequestID: requestID,
		Type:      req.Type,
		Records:   records,
	})
	return nil
}

func (s *Server) handleTemplateList(w http.ResponseWriter, r *http.Request) error {
	ts := s.engine.Templates()
	resp := TemplateListResponse{Templates: []TemplateInfo{}}
	for _, name := range ts.Names() {
		t, _ := ts.Lookup(name)
		resp.Templates = append(resp.Templates, templateInfo(t))
	}
	httpx.JSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) error {
	name := r.PathValue("name")
	t, ok := s.engine.Templates().Lookup(name)
	if !ok {
		return httpx.Errorf(http.StatusNotFound, "unknown record type %q", name)
	}
	httpx.JSON(w, http.StatusOK, templateInfo(t))
	return nil
}

func (s *Server) handlePlateFormats(w http.ResponseWriter, r *http.Request) error {
	formats := s.engine.PlateFormats()
	resp := PlateFormatListResponse{Formats: []regfake.PlateFormat{}}
	for _, code := range formats.Codes() {
		resp.Formats = append(resp.Formats, formats[code])
	}
	httpx.JSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	httpx.JSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Templates: len(s.engine.Templates().Names()),
	})
	return nil
}
