// Package store manages the long-lived reference data (Location, LogUser)
// and the destructive admin operations on it. Session ingestion itself lives
// in pkg/sessions and only ever reads these tables.
package store

import (
	"context"
	"errors"

	"github.com/shindelr/Session-Logger-API/pkg/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrLocationNotFound means the spot name matched no Location row.
var ErrLocationNotFound = errors.New("location not found")

// ErrUserNotFound means the username matched no LogUser row.
var ErrUserNotFound = errors.New("user not found")

// Stations holds the data sources resolved for a spot.
type Stations struct {
	BuoyNum     string
	TideStation string
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateLocation inserts a Location row. Used by the seed tool only.
func (s *Store) CreateLocation(ctx context.Context, loc *models.Location) error {
	return s.db.WithContext(ctx).Create(loc).Error
}

// CreateUser inserts a LogUser row. Used by the seed tool only.
func (s *Store) CreateUser(ctx context.Context, user *models.LogUser) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// GetUser fetches a LogUser row by username.
func (s *Store) GetUser(ctx context.Context, username string) (*models.LogUser, error) {
	var user models.LogUser
	err := s.db.WithContext(ctx).Where("Username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// StationsForSpot resolves a spot name to its buoy and tide station numbers.
func (s *Store) StationsForSpot(ctx context.Context, spotName string) (Stations, error) {
	var loc models.Location
	err := s.db.WithContext(ctx).Where("SpotName = ?", spotName).First(&loc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Stations{}, ErrLocationNotFound
		}
		return Stations{}, err
	}
	return Stations{BuoyNum: loc.BuoyNum, TideStation: loc.TideStation}, nil
}

// DeleteLocation removes a location together with its dependent sessions and
// the reading rows those sessions owned. The foreign key cascade alone only
// clears the SessionInfo rows; the readings are parents of SessionInfo and
// must be collected and deleted explicitly. Returns the number of sessions
// removed.
func (s *Store) DeleteLocation(ctx context.Context, spotName string) (int, error) {
	var removed int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loc models.Location
		if err := tx.Where("SpotName = ?", spotName).First(&loc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLocationNotFound
			}
			return err
		}

		n, err := deleteSessions(tx, "LocID = ?", loc.LocationID)
		if err != nil {
			return err
		}
		removed = n

		return tx.Delete(&loc).Error
	})
	if err != nil {
		return 0, err
	}

	zap.S().Infof("Deleted location %q and %d dependent sessions", spotName, removed)
	return removed, nil
}

// DeleteUser removes a user together with their sessions and the reading
// rows those sessions owned. Returns the number of sessions removed.
func (s *Store) DeleteUser(ctx context.Context, username string) (int, error) {
	var removed int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.LogUser
		if err := tx.Where("Username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		n, err := deleteSessions(tx, "UserID = ?", user.UserID)
		if err != nil {
			return err
		}
		removed = n

		return tx.Delete(&user).Error
	})
	if err != nil {
		return 0, err
	}

	zap.S().Infof("Deleted user %q and %d dependent sessions", username, removed)
	return removed, nil
}

// deleteSessions removes the sessions matching the condition plus their
// now-orphaned Temps, Swell, Tide, and Wind rows, inside the caller's
// transaction.
func deleteSessions(tx *gorm.DB, query string, arg any) (int, error) {
	var dependents []models.SessionInfo
	if err := tx.Where(query, arg).Find(&dependents).Error; err != nil {
		return 0, err
	}
	if len(dependents) == 0 {
		return 0, nil
	}

	tempIDs := make([]uint, 0, len(dependents))
	swellIDs := make([]uint, 0, len(dependents))
	tideIDs := make([]uint, 0, len(dependents))
	windIDs := make([]uint, 0, len(dependents))
	for _, dep := range dependents {
		tempIDs = append(tempIDs, dep.TempID)
		swellIDs = append(swellIDs, dep.SwellID)
		tideIDs = append(tideIDs, dep.TideID)
		windIDs = append(windIDs, dep.WindID)
	}

	if err := tx.Where(query, arg).Delete(&models.SessionInfo{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("TempID IN ?", tempIDs).Delete(&models.Temps{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("SwellID IN ?", swellIDs).Delete(&models.Swell{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("TideID IN ?", tideIDs).Delete(&models.Tide{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("WindID IN ?", windIDs).Delete(&models.Wind{}).Error; err != nil {
		return 0, err
	}

	return len(dependents), nil
}
