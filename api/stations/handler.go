// Package stations exposes derived station state over HTTP for non-browser
// consumers: the congestion classification and the hourly demand prediction.
package stations

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chargecast/core/congestion"
	"chargecast/core/demand"
	"chargecast/core/model"
	"chargecast/core/poller"
)

// CongestionResponse is the payload of GET /api/stations/{id}/congestion.
type CongestionResponse struct {
	StationID string `json:"stationId"`
	congestion.Classification
	At time.Time `json:"at"`
}

// PredictionResponse is the payload of GET /api/stations/{id}/prediction.
type PredictionResponse struct {
	StationID  string  `json:"stationId"`
	Predicted  int     `json:"predicted"`
	Computable bool    `json:"computable"`
	Mean       float64 `json:"mean,omitempty"`
	PeakHour   int     `json:"peakHour,omitempty"`
	PeakVisits int     `json:"peakVisits,omitempty"`
}

// Handler serves the derived-state endpoints.
type Handler struct {
	coord *poller.Coordinator
	now   func() time.Time
}

func NewHandler(coord *poller.Coordinator) *Handler {
	return &Handler{coord: coord, now: time.Now}
}

// Routes registers the endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/stations/{id}/congestion", h.handleCongestion)
	mux.HandleFunc("GET /api/stations/{id}/prediction", h.handlePrediction)
}

func (h *Handler) handleCongestion(w http.ResponseWriter, r *http.Request) {
	sum, ok := h.brief(w, r)
	if !ok {
		return
	}
	now := h.now()
	resp := CongestionResponse{
		StationID:      sum.StationID,
		Classification: congestion.ClassifySummary(*sum, now.Hour()),
		At:             now,
	}
	writeJSON(w, resp)
}

func (h *Handler) handlePrediction(w http.ResponseWriter, r *http.Request) {
	sum, ok := h.brief(w, r)
	if !ok {
		return
	}
	predicted, computable := demand.PredictVisitCount(sum.Demand, sum.Info.UsingChargers, h.now().Hour())
	resp := PredictionResponse{
		StationID:  sum.StationID,
		Predicted:  predicted,
		Computable: computable,
	}
	if sum.Demand != nil {
		if stats, ok := demand.Profile(sum.Demand.HourlyVisitNum); ok {
			resp.Mean = stats.Mean
			resp.PeakHour = stats.PeakHour
			resp.PeakVisits = stats.PeakVisits
		}
	}
	writeJSON(w, resp)
}

func (h *Handler) brief(w http.ResponseWriter, r *http.Request) (*model.StationSummary, bool) {
	sum, err := h.coord.Brief(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, poller.ErrNoStation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return nil, false
	}
	return sum, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
