package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/liftplan/internal/importer"
	"github.com/alexanderramin/liftplan/internal/repository"
	"github.com/alexanderramin/liftplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeEntryCatalog() importer.CatalogFile {
	return importer.CatalogFile{
		{ID: "0025", Name: "barbell bench press", BodyPart: "chest", Target: "pectorals", Equipment: "barbell"},
		{ID: "0294", Name: "dumbbell biceps curl", BodyPart: "upper arms", Target: "biceps", Equipment: "dumbbell",
			Instructions: []string{"Stand tall.", "Curl the weights."}},
		{ID: "0662", Name: "push-up", BodyPart: "chest", Target: "pectorals", Equipment: "body weight"},
	}
}

func TestCatalogImport_CreatesRecords(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteExerciseRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()

	result, err := svc.ImportEntries(ctx, threeEntryCatalog())
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Imported: 3, Created: 3, Updated: 0}, result)

	curl, err := repo.GetByExternalID(ctx, "0294")
	require.NoError(t, err)
	assert.Equal(t, "dumbbell biceps curl", curl.Name)
	require.NotNil(t, curl.Instructions)
	assert.Equal(t, "Stand tall.\nCurl the weights.", *curl.Instructions)
}

func TestCatalogImport_ReimportUpdatesInPlace(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteExerciseRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.ImportEntries(ctx, threeEntryCatalog())
	require.NoError(t, err)
	first, err := repo.GetByExternalID(ctx, "0025")
	require.NoError(t, err)

	updated := threeEntryCatalog()
	updated[0].Name = "Barbell Bench Press (flat)"
	updated = append(updated, importer.CatalogEntry{ID: "9999", Name: "goblet squat", Equipment: "kettlebell"})

	result, err := svc.ImportEntries(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 3, result.Updated)

	second, err := repo.GetByExternalID(ctx, "0025")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "stored id survives re-import")
	assert.Equal(t, "Barbell Bench Press (flat)", second.Name)
}

func TestCatalogImport_ValidationFailureWritesNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteExerciseRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()

	entries := threeEntryCatalog()
	entries[1].Equipment = ""
	_, err := svc.ImportEntries(ctx, entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (1 errors)")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogImport_RollbackOnUpsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteExerciseRepo(database)
	ctx := context.Background()

	// ExecContext calls: one upsert per record. Fail on the third.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Err:    fmt.Errorf("injected upsert failure"),
	}
	svc := NewCatalogService(repo, failUoW)

	_, err := svc.ImportEntries(ctx, threeEntryCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected upsert failure")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "no records should exist after rollback")
}

func TestCatalogImportFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteExerciseRepo(database)
	obs := &recordingObserver{}
	svc := NewCatalogService(repo, testutil.NewTestUoW(database), obs)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "exercises.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "1", "name": "Kettlebell Swing", "bodyPart": "upper legs", "target": "glutes", "equipment": "kettlebell"}
	]`), 0o644))

	result, err := svc.ImportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "import-catalog", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["created"])

	_, err = svc.ImportFile(ctx, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading catalog file")
}

func TestCatalogStatsAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteExerciseRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.ImportEntries(ctx, threeEntryCatalog())
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Len(t, stats.ByEquipment, 3)

	all, err := svc.List(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dumbbells, err := svc.List(ctx, []string{" Dumbbell "}, 0)
	require.NoError(t, err)
	require.Len(t, dumbbells, 1)
	assert.Equal(t, "dumbbell biceps curl", dumbbells[0].Name)

	limited, err := svc.List(ctx, nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestCatalogGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteExerciseRepo(database)
	svc := NewCatalogService(repo, testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.ImportEntries(ctx, threeEntryCatalog())
	require.NoError(t, err)
	pushup, err := repo.GetByExternalID(ctx, "0662")
	require.NoError(t, err)

	got, err := svc.Get(ctx, " "+pushup.ID+" ")
	require.NoError(t, err)
	assert.Equal(t, "push-up", got.Name)
	assert.Equal(t, "body weight", got.Equipment)

	byExternal, err := svc.Get(ctx, "0662")
	require.NoError(t, err)
	assert.Equal(t, pushup.ID, byExternal.ID)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
