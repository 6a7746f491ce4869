package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/status"
	"github.com/rpggio/upkeep/internal/repository"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func seedFacility(t *testing.T, db *DB) *FacilityRepository {
	t.Helper()
	ctx := context.Background()
	repo := NewFacilityRepository(db)

	require.NoError(t, repo.CreatePhase(ctx, &facility.Phase{ID: "p1", Name: "Phase 1"}))
	require.NoError(t, repo.CreateCategory(ctx, &facility.Category{ID: "c1", Name: "Exit Signs", PhaseID: ptr("p1")}))
	require.NoError(t, repo.CreateCategory(ctx, &facility.Category{ID: "g1", Name: "Generator East"}))
	require.NoError(t, repo.CreateTask(ctx, &facility.Task{
		ID: "t1", Name: "Monthly Battery Test", CategoryID: "c1", RecurrenceType: "monthly",
	}))
	require.NoError(t, repo.CreateTask(ctx, &facility.Task{
		ID: "t2", Name: "Weekly Test", CategoryID: "g1", RecurrenceType: "weekly", RequiresTime: true,
	}))
	return repo
}

func TestFacilityRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := seedFacility(t, db)

	phase, err := repo.GetPhase(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Phase 1", phase.Name)
	require.False(t, phase.CreatedAt.IsZero())

	cat, err := repo.GetCategory(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "p1", *cat.PhaseID)

	gen, err := repo.GetCategory(ctx, "g1")
	require.NoError(t, err)
	require.True(t, gen.Ungrouped())

	task, err := repo.GetTask(ctx, "t2")
	require.NoError(t, err)
	require.Equal(t, "Weekly Test", task.Name)
	require.True(t, task.RequiresTime)
	require.Nil(t, task.LastCompleted)
	require.Equal(t, status.NoEntries, task.Status)

	_, err = repo.GetTask(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetPhase(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetCategory(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFacilityRepository_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := seedFacility(t, db)

	err := repo.CreatePhase(context.Background(), &facility.Phase{ID: "p1", Name: "Again"})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestFacilityRepository_Lists(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := seedFacility(t, db)

	phases, err := repo.ListPhases(ctx)
	require.NoError(t, err)
	require.Len(t, phases, 1)

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
}

func TestFacilityRepository_RenameDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := seedFacility(t, db)

	require.NoError(t, repo.RenameTask(ctx, "t1", "Battery Test"))
	task, err := repo.GetTask(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Battery Test", task.Name)
	require.ErrorIs(t, repo.RenameTask(ctx, "missing", "x"), repository.ErrNotFound)

	entries := NewEntryRepository(db)
	require.NoError(t, entries.CreateWithCache(ctx, newEntry("e1", "t1", time.Now()), nil))

	require.NoError(t, repo.DeleteTask(ctx, "t1"))
	_, err = repo.GetTask(ctx, "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = entries.Get(ctx, "e1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.DeleteTask(ctx, "t1"), repository.ErrNotFound)
}
