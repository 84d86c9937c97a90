package server

import (
	"encoding/json"
	"io"
	"math"
	"net/http"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/geo"
	apperrors "github.com/francedirectjp-art/astro-medical-system/internal/common/errors"
	"github.com/francedirectjp-art/astro-medical-system/internal/diagnosis"
	"github.com/francedirectjp-art/astro-medical-system/internal/report"
)

type planetPayload struct {
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
	Longitude float64 `json:"longitude"`
	Element   string  `json:"element"`
}

type birthInfoPayload struct {
	Name     string `json:"name"`
	Datetime string `json:"birth_datetime"`
	Region   string `json:"birth_region"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func planetsPayload(positions []chart.Position) map[string]planetPayload {
	out := make(map[string]planetPayload, len(positions))
	for _, p := range positions {
		out[p.Body.Key()] = planetPayload{
			Sign:      p.Sign.Label(),
			Degree:    round2(p.Degree),
			Longitude: round2(p.Longitude),
			Element:   p.Element().Label(),
		}
	}
	return out
}

func balancePayload(b chart.Balance) map[string]float64 {
	out := make(map[string]float64, len(chart.Elements))
	for _, e := range chart.Elements {
		out[e.Label()] = b.Percent(e)
	}
	return out
}

func (s *Server) decodeBirthInput(r *http.Request) (diagnosis.BirthInput, error) {
	var in diagnosis.BirthInput

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return in, apperrors.NewInvalidInputError("failed to read request body")
	}
	if err := validateBirthInput(body); err != nil {
		return in, err
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return in, apperrors.NewInvalidInputError("request body is not valid JSON")
	}
	return in, nil
}

// handleCalculatePlanets returns the seven positions and element balance
// without any report text.
func (s *Server) handleCalculatePlanets(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeBirthInput(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.service.Chart(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"planets":         planetsPayload(result.Positions),
		"element_balance": balancePayload(result.Balance),
		"archetype":       result.Archetype.Name,
		"archetype_id":    result.Archetype.ID,
		"birth_info": birthInfoPayload{
			Name:     in.Name,
			Datetime: in.DateLabel() + " " + in.TimeLabel(),
			Region:   result.Reference.Region.Name,
		},
		"disclaimer": report.Disclaimer,
	})
}

// handleSimpleDiagnosis returns the archetype classification with the short
// diagnosis text.
func (s *Server) handleSimpleDiagnosis(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeBirthInput(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, rendered, err := s.service.SimpleReport(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"archetype":        result.Archetype.Name,
		"archetype_id":     result.Archetype.ID,
		"sun_element":      result.SunElement().Label(),
		"moon_element":     result.MoonElement().Label(),
		"element_balance":  balancePayload(result.Balance),
		"diagnosis_text":   rendered.Text,
		"generation_state": rendered.State,
		"character_count":  rendered.CharCount,
		"disclaimer":       report.Disclaimer,
	})
}

// handleDetailedReport returns the full six-section report.
func (s *Server) handleDetailedReport(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeBirthInput(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, rendered, err := s.service.DetailedReport(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"archetype":        result.Archetype.Name,
		"archetype_id":     result.Archetype.ID,
		"element_balance":  balancePayload(result.Balance),
		"detailed_report":  rendered.Text,
		"sections":         rendered.Sections,
		"generation_state": rendered.State,
		"character_count":  rendered.CharCount,
		"disclaimer":       report.Disclaimer,
	})
}

// handleHealth reports process liveness and dependency status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "connected"
		if err := s.redis.Ping(r.Context()); err != nil {
			redisStatus = "unreachable"
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
		"redis":   redisStatus,
	})
}

// handleIndex describes the API surface.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": s.config.App.Name,
		"version": s.config.App.Version,
		"endpoints": map[string]string{
			"POST /api/calculate-planets":        "出生データから7天体の配置を計算します",
			"POST /api/simple-diagnosis":         "アーキタイプと簡易診断文を返します",
			"POST /api/generate-detailed-report": "6セクションの詳細レポートを生成します",
			"GET /health":                        "ヘルスチェック",
		},
		"supported_regions": len(geo.Supported()),
		"disclaimer":        report.Disclaimer,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := apperrors.AsStandard(err)
	status := apperrors.HTTPStatus(stdErr.Code)

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed", map[string]interface{}{
			"request_id": RequestIDFrom(r.Context()),
			"path":       r.URL.Path,
		})
	}

	s.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   stdErr,
	})
}
