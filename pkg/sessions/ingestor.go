package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/shindelr/Session-Logger-API/pkg/models"
	"github.com/shindelr/Session-Logger-API/pkg/observability"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ingestor persists observations. Each call to Ingest is one unit of work:
// either all five rows land, or none do.
type Ingestor struct {
	db      *gorm.DB
	metrics *observability.Metrics
}

// NewIngestor creates an Ingestor. metrics may be nil.
func NewIngestor(db *gorm.DB, metrics *observability.Metrics) *Ingestor {
	return &Ingestor{db: db, metrics: metrics}
}

// Ingest validates the observation, resolves its named references, and
// inserts the Temps, Swell, Tide, Wind, and SessionInfo rows inside a single
// transaction. It returns the generated session identifier. Cancelling ctx
// aborts the transaction the same way a storage failure does.
//
// Ingest retries nothing; the caller owns retry policy.
func (i *Ingestor) Ingest(ctx context.Context, obs Observation) (uint, error) {
	start := time.Now()

	sessionID, err := i.ingest(ctx, obs)
	if i.metrics != nil {
		i.metrics.IngestDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			i.metrics.IngestFailures.WithLabelValues(failureReason(err)).Inc()
		} else {
			i.metrics.SessionsIngested.Inc()
		}
	}
	if err != nil {
		return 0, err
	}

	zap.S().Infof("Ingested session %d for spot %q by %q", sessionID, obs.SpotName, obs.Username)
	return sessionID, nil
}

func (i *Ingestor) ingest(ctx context.Context, obs Observation) (uint, error) {
	if err := obs.Validate(); err != nil {
		return 0, err
	}

	var sessionID uint

	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Read-only resolution phase. Misses abort before anything is written
		// and are surfaced distinctly from storage failures.
		var loc models.Location
		if err := tx.Where("SpotName = ?", obs.SpotName).First(&loc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownLocation
			}
			return &StorageError{Op: "location lookup", Err: err}
		}

		var user models.LogUser
		if err := tx.Where("Username = ?", obs.Username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownUser
			}
			return &StorageError{Op: "user lookup", Err: err}
		}

		// Write phase. Readings are per-session values: always fresh rows,
		// never a reuse of an existing row with matching values.
		temps := models.Temps{AirTemp: obs.AirTemp, WaterTemp: obs.WaterTemp}
		if err := tx.Create(&temps).Error; err != nil {
			return &StorageError{Op: "temps insert", Err: err}
		}

		swell := models.Swell{
			MeanWaveDir:         obs.MeanWaveDir,
			MeanWaveDirCardinal: obs.MeanWaveDirCardinal,
			DomPeriod:           obs.DomPeriod,
			MeanWaveHeight:      obs.MeanWaveHeight,
		}
		if err := tx.Create(&swell).Error; err != nil {
			return &StorageError{Op: "swell insert", Err: err}
		}

		tide := models.Tide{
			Incoming:      obs.TideIncoming,
			MaximumHeight: obs.TideMaxHeight,
			MinimumHeight: obs.TideMinHeight,
			MedianHeight:  obs.TideMedianHeight,
		}
		if err := tx.Create(&tide).Error; err != nil {
			return &StorageError{Op: "tide insert", Err: err}
		}

		wind := models.Wind{
			MeanWindDir:         obs.MeanWindDir,
			MeanWindDirCardinal: obs.MeanWindDirCardinal,
			MeanWindSpeed:       obs.MeanWindSpeed,
			GustSpeed:           obs.GustSpeed,
		}
		if err := tx.Create(&wind).Error; err != nil {
			return &StorageError{Op: "wind insert", Err: err}
		}

		session := models.SessionInfo{
			LocID:          loc.LocationID,
			TempID:         temps.TempID,
			SwellID:        swell.SwellID,
			TideID:         tide.TideID,
			WindID:         wind.WindID,
			UserID:         user.UserID,
			SessionDate:    obs.Date,
			SessionTimeIn:  obs.TimeIn,
			SessionTimeOut: obs.TimeOut,
			SessionNotes:   obs.Notes,
			Rating:         obs.Rating,
		}
		if err := tx.Omit(clause.Associations).Create(&session).Error; err != nil {
			return &StorageError{Op: "session insert", Err: err}
		}

		sessionID = session.SessionID
		return nil
	})

	if err != nil {
		var validationErr *ValidationError
		var storageErr *StorageError
		if errors.Is(err, ErrUnknownLocation) || errors.Is(err, ErrUnknownUser) ||
			errors.As(err, &validationErr) || errors.As(err, &storageErr) {
			return 0, err
		}
		// Commit failures and context cancellation land here.
		return 0, &StorageError{Op: "transaction", Err: err}
	}

	return sessionID, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownLocation):
		return "unknown_location"
	case errors.Is(err, ErrUnknownUser):
		return "unknown_user"
	default:
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return "validation"
		}
		return "storage"
	}
}
