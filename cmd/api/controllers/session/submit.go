package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shindelr/Session-Logger-API/pkg/application"
	"github.com/shindelr/Session-Logger-API/pkg/fetcher"
	"github.com/shindelr/Session-Logger-API/pkg/sessions"
	"github.com/shindelr/Session-Logger-API/pkg/store"
	traits "github.com/shindelr/Session-Logger-API/pkg/traits/controller-traits"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// SubmissionRequest is the session logger form payload. The environmental
// readings are not part of it; they are fetched for the session window from
// the spot's buoy and tide station before ingestion.
type SubmissionRequest struct {
	Spot     string  `json:"spot"`
	Date     string  `json:"date"`
	TimeIn   string  `json:"timeIn"`
	TimeOut  string  `json:"timeOut"`
	Rating   int     `json:"rating"`
	Username string  `json:"username"`
	Notes    *string `json:"notes,omitempty"`
}

// Submit handles a form submission: resolve the spot's stations, enrich the
// session window with NDBC and CO-OPS data, then ingest.
func Submit(app *application.Application) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		var req SubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			traits.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		// Fallback policy belongs to this layer, never to the core.
		if req.Username == "" {
			req.Username = app.Cfg.GetDefaultUsername()
		}

		date, err := parseSubmissionDate(req.Date, app.Cfg.GetSpotTimezone())
		if err != nil {
			traits.WriteErrorResponse(w, http.StatusBadRequest, "invalid date: "+err.Error())
			return
		}

		stations, err := app.Store.StationsForSpot(r.Context(), req.Spot)
		if err != nil {
			if errors.Is(err, store.ErrLocationNotFound) {
				traits.WriteErrorResponse(w, http.StatusNotFound, "unknown location: "+req.Spot)
				return
			}
			traits.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		if stations.BuoyNum == "" {
			traits.WriteErrorResponse(w, http.StatusBadGateway, "no buoy configured for spot "+req.Spot)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), app.Cfg.GetFetchTimeout())
		defer cancel()

		avgs, err := app.Buoy.SessionAverages(ctx, stations.BuoyNum, date, req.TimeIn, req.TimeOut)
		if err != nil {
			traits.WriteErrorResponse(w, http.StatusBadGateway, "buoy data unavailable: "+err.Error())
			return
		}

		// A spot without a tide station, or a CO-OPS outage, still logs a
		// session; the tide row just holds nulls.
		var tides fetcher.TideStats
		if stations.TideStation != "" {
			tides, err = app.Tides.SessionTides(ctx, stations.TideStation, date, req.TimeIn, req.TimeOut)
			if err != nil {
				zap.S().Warnf("Tide data unavailable for %q: %v", req.Spot, err)
				tides = fetcher.TideStats{}
			}
		}

		obs, err := buildObservation(req, date, avgs, tides)
		if err != nil {
			traits.WriteErrorResponse(w, http.StatusBadGateway, err.Error())
			return
		}

		sessionID, err := app.Ingestor.Ingest(r.Context(), obs)
		if err != nil {
			writeIngestError(w, err)
			return
		}

		traits.WriteResponseWithStatus(w, http.StatusCreated, map[string]interface{}{
			"session_id": sessionID,
		})
	}
}

// parseSubmissionDate accepts the frontend's ISO timestamp or a bare date,
// normalized to the spot's timezone.
func parseSubmissionDate(value string, tz *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(tz), nil
	}
	return time.ParseInLocation("2006-01-02", value, tz)
}

// buildObservation assembles the full observation from the form fields and
// the fetched readings. Swell and wind are required by the schema, so a buoy
// that dropped those columns fails the submission.
func buildObservation(req SubmissionRequest, date time.Time, avgs fetcher.BuoyAverages, tides fetcher.TideStats) (sessions.Observation, error) {
	if avgs.MeanWaveDir == nil || avgs.MeanWaveHeight == nil || avgs.DomPeriod == nil {
		return sessions.Observation{}, errors.New("buoy reported no wave data for the session window")
	}
	if avgs.MeanWindDir == nil || avgs.MeanWindSpeed == nil || avgs.GustSpeed == nil {
		return sessions.Observation{}, errors.New("buoy reported no wind data for the session window")
	}

	return sessions.Observation{
		SpotName: req.Spot,
		Username: req.Username,
		Date:     date,
		TimeIn:   req.TimeIn,
		TimeOut:  req.TimeOut,
		Rating:   req.Rating,
		Notes:    req.Notes,

		AirTemp:   avgs.AirTemp,
		WaterTemp: avgs.WaterTemp,

		MeanWaveDir:         *avgs.MeanWaveDir,
		MeanWaveDirCardinal: avgs.MeanWaveDirCardinal,
		MeanWaveHeight:      *avgs.MeanWaveHeight,
		DomPeriod:           *avgs.DomPeriod,

		MeanWindDir:         *avgs.MeanWindDir,
		MeanWindDirCardinal: avgs.MeanWindDirCardinal,
		MeanWindSpeed:       *avgs.MeanWindSpeed,
		GustSpeed:           *avgs.GustSpeed,

		TideIncoming:     tides.Incoming,
		TideMaxHeight:    tides.MaxHeight,
		TideMinHeight:    tides.MinHeight,
		TideMedianHeight: tides.MedianHeight,
	}, nil
}
