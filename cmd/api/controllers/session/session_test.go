package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shindelr/Session-Logger-API/pkg/application"
	"github.com/shindelr/Session-Logger-API/pkg/config"
	"github.com/shindelr/Session-Logger-API/pkg/fetcher"
	"github.com/shindelr/Session-Logger-API/pkg/models"
	"github.com/shindelr/Session-Logger-API/pkg/sessions"
	"github.com/shindelr/Session-Logger-API/pkg/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubBuoy struct {
	avgs fetcher.BuoyAverages
	err  error
}

func (s *stubBuoy) SessionAverages(ctx context.Context, station string, date time.Time, timeIn, timeOut string) (fetcher.BuoyAverages, error) {
	return s.avgs, s.err
}

type stubTides struct {
	stats fetcher.TideStats
	err   error
}

func (s *stubTides) SessionTides(ctx context.Context, station string, date time.Time, timeIn, timeOut string) (fetcher.TideStats, error) {
	return s.stats, s.err
}

func fullAverages() fetcher.BuoyAverages {
	waveDir, waveHeight, domPeriod := 270, 3.9, 9.5
	windDir := 275
	windSpeed, gust := 22.8, 29.3
	airTemp, waterTemp := 56.3, 49.6
	return fetcher.BuoyAverages{
		AirTemp:             &airTemp,
		WaterTemp:           &waterTemp,
		MeanWaveDir:         &waveDir,
		MeanWaveDirCardinal: "W",
		MeanWaveHeight:      &waveHeight,
		DomPeriod:           &domPeriod,
		MeanWindDir:         &windDir,
		MeanWindDirCardinal: "W",
		MeanWindSpeed:       &windSpeed,
		GustSpeed:           &gust,
	}
}

func fullTides() fetcher.TideStats {
	incoming := true
	maxH, minH, median := 2.5, 0.5, 1.0
	return fetcher.TideStats{
		Incoming:     &incoming,
		MaxHeight:    &maxH,
		MinHeight:    &minH,
		MedianHeight: &median,
	}
}

func testApp(t *testing.T) *application.Application {
	t.Helper()

	t.Setenv("SPOT_TIMEZONE", "UTC")
	t.Setenv("FETCH_TIMEOUT", "5")

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Location{},
		&models.LogUser{},
		&models.Temps{},
		&models.Swell{},
		&models.Tide{},
		&models.Wind{},
		&models.SessionInfo{},
	))

	require.NoError(t, db.Create(&models.Location{
		SpotName:    "Agate Beach",
		BuoyNum:     "46050",
		Lat:         44.67,
		Long:        -124.05,
		TideStation: "9435380",
	}).Error)
	require.NoError(t, db.Create(&models.LogUser{
		Username: "roshindelman",
		Passkey:  "hunter2",
	}).Error)

	return &application.Application{
		Cfg:      config.Load(),
		DB:       db,
		Ingestor: sessions.NewIngestor(db, nil),
		Store:    store.New(db),
		Buoy:     &stubBuoy{avgs: fullAverages()},
		Tides:    &stubTides{stats: fullTides()},
	}
}

func serveCreate(t *testing.T, app *application.Application, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	Create(app)(rec, req, nil)
	return rec
}

func serveSubmit(t *testing.T, app *application.Application, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/submit", strings.NewReader(body))
	Submit(app)(rec, req, nil)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const createBody = `{
	"spot_name": "Agate Beach",
	"username": "roshindelman",
	"date": "2024-01-01T00:00:00Z",
	"time_in": "13:00",
	"time_out": "13:45",
	"rating": 2,
	"mean_wave_dir": 270,
	"mean_wave_dir_cardinal": "W",
	"mean_wave_height": 3.9,
	"dom_period": 9.5,
	"mean_wind_dir": 275,
	"mean_wind_dir_cardinal": "W",
	"mean_wind_speed": 22.8,
	"gust_speed": 29.3
}`

func TestCreateSession(t *testing.T) {
	app := testApp(t)

	rec := serveCreate(t, app, createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.NotZero(t, body["session_id"])
}

func TestCreateSessionUnknownLocation(t *testing.T) {
	app := testApp(t)

	body := strings.Replace(createBody, "Agate Beach", "Mavericks", 1)
	rec := serveCreate(t, app, body)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "unknown location")
}

func TestCreateSessionUnknownUser(t *testing.T) {
	app := testApp(t)

	body := strings.Replace(createBody, "roshindelman", "nobody", 1)
	rec := serveCreate(t, app, body)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "unknown user")
}

func TestCreateSessionValidationError(t *testing.T) {
	app := testApp(t)

	body := strings.Replace(createBody, `"13:00"`, `"1pm"`, 1)
	rec := serveCreate(t, app, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "time_in")
}

func TestCreateSessionMalformedBody(t *testing.T) {
	app := testApp(t)

	rec := serveCreate(t, app, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const submitBody = `{
	"spot": "Agate Beach",
	"date": "2024-01-01",
	"timeIn": "13:00",
	"timeOut": "13:45",
	"rating": 2,
	"username": "roshindelman"
}`

func TestSubmitSession(t *testing.T) {
	app := testApp(t)

	rec := serveSubmit(t, app, submitBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var n int64
	require.NoError(t, app.DB.Model(&models.SessionInfo{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	// The fetched tide stats made it into the tide row.
	var tide models.Tide
	require.NoError(t, app.DB.First(&tide).Error)
	require.NotNil(t, tide.Incoming)
	assert.True(t, *tide.Incoming)
	require.NotNil(t, tide.MedianHeight)
	assert.Equal(t, 1.0, *tide.MedianHeight)
}

func TestSubmitSessionDefaultUsername(t *testing.T) {
	t.Setenv("DEFAULT_USERNAME", "roshindelman")
	app := testApp(t)

	body := strings.Replace(submitBody, `"roshindelman"`, `""`, 1)
	rec := serveSubmit(t, app, body)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubmitSessionNoDefaultUsername(t *testing.T) {
	app := testApp(t)

	body := strings.Replace(submitBody, `"roshindelman"`, `""`, 1)
	rec := serveSubmit(t, app, body)
	// No fallback configured: the empty username reaches validation.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitSessionUnknownSpot(t *testing.T) {
	app := testApp(t)

	body := strings.Replace(submitBody, "Agate Beach", "Mavericks", 1)
	rec := serveSubmit(t, app, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitSessionBadDate(t *testing.T) {
	app := testApp(t)

	body := strings.Replace(submitBody, "2024-01-01", "January 1st", 1)
	rec := serveSubmit(t, app, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitSessionBuoyUnavailable(t *testing.T) {
	app := testApp(t)
	app.Buoy = &stubBuoy{err: errors.New("NDBC returned status code 503 for station 46050")}

	rec := serveSubmit(t, app, submitBody)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var n int64
	require.NoError(t, app.DB.Model(&models.SessionInfo{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSubmitSessionNoWaveData(t *testing.T) {
	app := testApp(t)
	avgs := fullAverages()
	avgs.MeanWaveHeight = nil
	app.Buoy = &stubBuoy{avgs: avgs}

	rec := serveSubmit(t, app, submitBody)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "no wave data")
}

func TestSubmitSessionTideOutage(t *testing.T) {
	app := testApp(t)
	app.Tides = &stubTides{err: errors.New("CO-OPS error for station 9435380: down")}

	rec := serveSubmit(t, app, submitBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Session still logs; the tide row holds nulls.
	var tide models.Tide
	require.NoError(t, app.DB.First(&tide).Error)
	assert.Nil(t, tide.Incoming)
	assert.Nil(t, tide.MaximumHeight)
}

func TestSubmitSessionNoTideStation(t *testing.T) {
	app := testApp(t)
	require.NoError(t, app.DB.Model(&models.Location{}).
		Where("SpotName = ?", "Agate Beach").
		Update("TideStation", "").Error)
	app.Tides = &stubTides{err: errors.New("should not be called")}

	rec := serveSubmit(t, app, submitBody)
	require.Equal(t, http.StatusCreated, rec.Code)
}
