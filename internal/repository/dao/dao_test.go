package dao_test

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tourneyhq/pokernights-api/internal/repository/dao"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=pokernights_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}

	if err = pool.Retry(func() error {
		dsn := fmt.Sprintf("host=localhost port=%v user=postgres password=secret dbname=pokernights_test sslmode=disable",
			resource.GetPort("5432/tcp"))

		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = dao.InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge resource: %v", err)
	}

	os.Exit(code)
}

func TestEventDAO_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	seasonDAO := dao.NewSeasonDAO(testDB)
	playerDAO := dao.NewPlayerDAO(testDB)
	eventDAO := dao.NewEventDAO(testDB)

	season, err := seasonDAO.Insert(ctx, dao.Season{
		Name:      "Winter League",
		Slug:      "winter-league",
		StartDate: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	})
	require.NoError(t, err)

	ann, err := playerDAO.Insert(ctx, dao.Player{Name: "Ann"})
	require.NoError(t, err)
	ben, err := playerDAO.Insert(ctx, dao.Player{Name: "Ben"})
	require.NoError(t, err)

	event, err := eventDAO.Insert(ctx, dao.Event{
		SeasonID: season.ID,
		Name:     "Game Night 1",
		Slug:     "game-night-1",
		Date:     time.Date(2025, 11, 7, 19, 0, 0, 0, time.UTC),
		BuyIn:    20,
		Status:   "draft",
	}, []uint{ann.ID, ben.ID})
	require.NoError(t, err)
	assert.Len(t, event.Participants, 2)

	err = eventDAO.UpdateStatus(ctx, event.ID, "active")
	require.NoError(t, err)

	err = eventDAO.SaveResults(ctx, event.ID, []dao.EventResult{
		{EventID: event.ID, PlayerID: ann.ID, Position: 2, Prize: 0, Rebuys: 1},
		{EventID: event.ID, PlayerID: ben.ID, Position: 1, Prize: 50, Rebuys: 0},
	}, 50, []uint{ann.ID, ben.ID})
	require.NoError(t, err)

	completed, err := eventDAO.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.Equal(t, 50, completed.PrizePool)
	assert.Len(t, completed.Results, 2)

	// Finalizing again replaces results instead of stacking them.
	err = eventDAO.SaveResults(ctx, event.ID, []dao.EventResult{
		{EventID: event.ID, PlayerID: ben.ID, Position: 1, Prize: 50, Rebuys: 0},
	}, 50, nil)
	require.NoError(t, err)

	completed, err = eventDAO.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, completed.Results, 1)
}

func TestEventDAO_FindByID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	_, err := dao.NewEventDAO(testDB).FindByID(context.Background(), 99999)
	assert.ErrorIs(t, err, dao.ErrEventNotFound)
}

func TestSeasonDAO_DeactivateEndedBefore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	seasonDAO := dao.NewSeasonDAO(testDB)

	ended := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	endedSeason, err := seasonDAO.Insert(ctx, dao.Season{
		Name:      "Spring League",
		Slug:      "spring-league",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &ended,
		IsActive:  true,
	})
	require.NoError(t, err)

	openSeason, err := seasonDAO.Insert(ctx, dao.Season{
		Name:      "Autumn League",
		Slug:      "autumn-league",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	})
	require.NoError(t, err)

	affected, err := seasonDAO.DeactivateEndedBefore(ctx, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, affected, int64(1))

	got, err := seasonDAO.FindByID(ctx, endedSeason.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = seasonDAO.FindByID(ctx, openSeason.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}
