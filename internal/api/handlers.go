package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/pkg/logger"
	"github.com/apetrov/econ-tracker/pkg/models"
)

const summaryCacheTTL = 60 * time.Second

// enrichedSnapshot builds the enriched view of all enabled series. It is the
// shared input for the health, correlation and action endpoints.
func (s *Server) enrichedSnapshot(ctx context.Context) ([]models.EnrichedIndicator, error) {
	summaries, err := s.dashboard.Summaries(ctx, true)
	if err != nil {
		return nil, err
	}
	return s.interpret.EnrichAll(summaries), nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabledOnly") != "false"

	cacheKey := "dashboard:summary:" + strconv.FormatBool(enabledOnly)
	if s.redis != nil {
		if cached, err := s.redis.Get(r.Context(), cacheKey).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	summaries, err := s.dashboard.Summaries(r.Context(), enabledOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.redis != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			if err := s.redis.Set(r.Context(), cacheKey, payload, summaryCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache dashboard summary", zap.Error(err))
			}
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// enrichedResponse pairs the flat indicator list with its category grouping
type enrichedResponse struct {
	Indicators []models.EnrichedIndicator `json:"indicators"`
	Categories []models.CategoryGroup     `json:"categories"`
}

func (s *Server) handleEnriched(w http.ResponseWriter, r *http.Request) {
	enriched, err := s.enrichedSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, enrichedResponse{
		Indicators: enriched,
		Categories: s.interpret.GroupByCategory(enriched),
	})
}

func (s *Server) handleEconomicHealth(w http.ResponseWriter, r *http.Request) {
	enriched, err := s.enrichedSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.interpret.GenerateEconomicHealth(enriched))
}

func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	enriched, err := s.enrichedSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.correlation.Analyze(enriched))
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	profile := models.UserProfile(r.URL.Query().Get("profile"))
	if profile == "" {
		profile = models.ProfileGeneral
	}
	if !models.ValidProfile(profile) {
		writeError(w, http.StatusBadRequest, "unknown profile: "+string(profile))
		return
	}

	enriched, err := s.enrichedSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	analysis := s.correlation.Analyze(enriched)
	plan := s.recommend.GeneratePlan(enriched, analysis, profile)

	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1year"
	}

	var seriesIDs []int
	if raw := r.URL.Query().Get("seriesIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			seriesIDs = append(seriesIDs, id)
		}
	}

	trends, err := s.dashboard.Trends(r.Context(), seriesIDs, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, trends)
}

func (s *Server) handleListSeries(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabledOnly") == "true"

	list, err := s.seriesRepo.ListSeries(r.Context(), enabledOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleObservations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid series id")
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	observations, err := s.seriesRepo.LatestObservations(r.Context(), id, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, observations)
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid series id")
		return
	}

	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.seriesRepo.SetEnabled(r.Context(), id, req.Enabled); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}
