// Command seed loads Location and LogUser reference data from a JSON file.
// Session ingestion never creates these rows; this tool and the registration
// flow are the only writers.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shindelr/Session-Logger-API/pkg/application"
	"github.com/shindelr/Session-Logger-API/pkg/fetcher"
	"github.com/shindelr/Session-Logger-API/pkg/models"
	"github.com/shindelr/Session-Logger-API/pkg/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type seedFile struct {
	Locations []models.Location `json:"locations"`
	Users     []models.LogUser  `json:"users"`
}

func main() {
	file := flag.String("file", "seed.json", "path to the seed data file")
	verify := flag.Bool("verify", false, "verify buoy numbers against NDBC before inserting")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	app, err := application.Start()
	if err != nil {
		zap.S().Fatal(err.Error())
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		zap.S().Fatalf("Failed to read seed file: %v", err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		zap.S().Fatalf("Failed to parse seed file: %v", err)
	}

	ctx := context.Background()

	var stationPage *fetcher.StationPageClient
	if *verify {
		stationPage = fetcher.NewStationPageClient("")
	}

	created := 0
	for i := range seed.Locations {
		loc := seed.Locations[i]

		if _, err := app.Store.StationsForSpot(ctx, loc.SpotName); err == nil {
			zap.S().Infof("Location %q already exists, skipping", loc.SpotName)
			continue
		} else if !errors.Is(err, store.ErrLocationNotFound) {
			zap.S().Fatalf("Failed to check location %q: %v", loc.SpotName, err)
		}

		if stationPage != nil && loc.BuoyNum != "" {
			title, err := stationPage.StationTitle(ctx, loc.BuoyNum)
			if err != nil {
				zap.S().Fatalf("Buoy %s for %q failed verification: %v", loc.BuoyNum, loc.SpotName, err)
			}
			zap.S().Infof("Verified buoy %s: %s", loc.BuoyNum, title)
		}

		if err := app.Store.CreateLocation(ctx, &loc); err != nil {
			zap.S().Fatalf("Failed to insert location %q: %v", loc.SpotName, err)
		}
		created++
	}
	zap.S().Infof("Seeded %d of %d locations", created, len(seed.Locations))

	created = 0
	for i := range seed.Users {
		user := seed.Users[i]

		if _, err := app.Store.GetUser(ctx, user.Username); err == nil {
			zap.S().Infof("User %q already exists, skipping", user.Username)
			continue
		} else if !errors.Is(err, store.ErrUserNotFound) {
			zap.S().Fatalf("Failed to check user %q: %v", user.Username, err)
		}

		if err := app.Store.CreateUser(ctx, &user); err != nil {
			zap.S().Fatalf("Failed to insert user %q: %v", user.Username, err)
		}
		created++
	}
	zap.S().Infof("Seeded %d of %d users", created, len(seed.Users))
}
