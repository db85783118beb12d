package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/repository"
)

func openTestRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := repository.Open(filepath.Join(t.TempDir(), "covidash.db"))
	gt.NoError(t, err)
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestProfileAbsentByDefault(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	profile, err := repo.GetProfile(ctx)
	gt.NoError(t, err)
	gt.Nil(t, profile)
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	in := &model.Profile{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	gt.NoError(t, repo.PutProfile(ctx, in))

	out, err := repo.GetProfile(ctx)
	gt.NoError(t, err)
	gt.NotNil(t, out)
	gt.Equal(t, out.Name, in.Name)
	gt.Equal(t, out.Email, in.Email)
	gt.True(t, out.UpdatedAt.Equal(in.UpdatedAt))
}

func TestProfileReplace(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	gt.NoError(t, repo.PutProfile(ctx, &model.Profile{Name: "first"}))
	gt.NoError(t, repo.PutProfile(ctx, &model.Profile{Name: "second"}))

	out, err := repo.GetProfile(ctx)
	gt.NoError(t, err)
	gt.Equal(t, out.Name, "second")
}

func TestProfileDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	gt.NoError(t, repo.PutProfile(ctx, &model.Profile{Name: "gone"}))
	gt.NoError(t, repo.DeleteProfile(ctx))

	out, err := repo.GetProfile(ctx)
	gt.NoError(t, err)
	gt.Nil(t, out)

	// Deleting the already-absent record is a no-op.
	gt.NoError(t, repo.DeleteProfile(ctx))
}
