package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/drinkingsweets/avito-tech/config"
	"github.com/drinkingsweets/avito-tech/internal/entities"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	team := entities.Team{Name: "backend", Members: []entities.User{
		{ID: "u1", Username: "Alice", IsActive: true},
		{ID: "u2", Username: "Bob", IsActive: true},
		{ID: "u3", Username: "Charlie", IsActive: true},
		{ID: "u4", Username: "Dana", IsActive: true},
	}}

	createdTeam, err := repo.CreateTeam(ctx, team)
	require.NoError(t, err)
	require.Len(t, createdTeam.Members, 4)

	_, err = repo.CreateTeam(ctx, entities.Team{Name: "backend", Members: []entities.User{
		{ID: "u9", Username: "Ghost", IsActive: true},
	}})
	require.ErrorIs(t, err, entities.ErrTeamExists)

	fetched, err := repo.GetTeam(ctx, team.Name)
	require.NoError(t, err)
	require.Equal(t, team.Name, fetched.Name)
	require.Len(t, fetched.Members, 4)

	_, err = repo.GetTeam(ctx, "frontend")
	require.ErrorIs(t, err, entities.ErrTeamNotFound)

	// Reviewer list is deduplicated on creation.
	pr, err := repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr1", Name: "Init", AuthorID: "u1",
		Reviewers: []string{"u2", "u3", "u2"},
	})
	require.NoError(t, err)
	require.Equal(t, entities.StatusOpen, pr.Status)
	require.NotNil(t, pr.CreatedAt)
	require.Nil(t, pr.MergedAt)
	require.ElementsMatch(t, []string{"u2", "u3"}, pr.Reviewers)

	_, err = repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr1", Name: "Duplicate", AuthorID: "u1", Reviewers: []string{"u2"},
	})
	require.ErrorIs(t, err, entities.ErrPRExists)

	_, err = repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr2", Name: "Ghost author", AuthorID: "nobody", Reviewers: []string{"u2"},
	})
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	_, err = repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr2", Name: "Ghost reviewer", AuthorID: "u1", Reviewers: []string{"nobody"},
	})
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	reassigned, err := repo.ReassignReviewer(ctx, pr.ID, "u2", "u4")
	require.NoError(t, err)
	require.NotContains(t, reassigned.Reviewers, "u2")
	require.Contains(t, reassigned.Reviewers, "u4")
	require.Contains(t, reassigned.Reviewers, "u3")

	_, err = repo.ReassignReviewer(ctx, pr.ID, "u2", "u1")
	require.ErrorIs(t, err, entities.ErrNotAssigned)

	_, err = repo.ReassignReviewer(ctx, pr.ID, "u3", "u4")
	require.ErrorIs(t, err, entities.ErrReviewerAssigned)

	_, err = repo.ReassignReviewer(ctx, "missing", "u3", "u4")
	require.ErrorIs(t, err, entities.ErrPRNotFound)

	prs, err := repo.GetUserReviews(ctx, "u4")
	require.NoError(t, err)
	require.Len(t, prs, 1)
	require.Equal(t, pr.ID, prs[0].ID)

	_, err = repo.GetUserReviews(ctx, "nobody")
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	reviewers, err := repo.GetTeamReviewers(ctx, team.Name)
	require.NoError(t, err)
	ids := make([]string, 0, len(reviewers))
	for _, u := range reviewers {
		ids = append(ids, u.ID)
	}
	require.ElementsMatch(t, []string{"u3", "u4"}, ids)

	merged, err := repo.MergePR(ctx, pr.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusMerged, merged.Status)
	require.NotNil(t, merged.MergedAt)
	require.ElementsMatch(t, []string{"u3", "u4"}, merged.Reviewers)

	// Merge is strict: a second call is a lifecycle violation, not a no-op.
	_, err = repo.MergePR(ctx, pr.ID)
	require.ErrorIs(t, err, entities.ErrPRNotOpen)

	_, err = repo.ReassignReviewer(ctx, pr.ID, "u3", "u2")
	require.ErrorIs(t, err, entities.ErrPRMerged)

	prStats, err := repo.PRStats(ctx, pr.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), prStats.TransferCount)
	require.Len(t, prStats.Reassignments, 1)
	require.Equal(t, "u2", prStats.Reassignments[0].OldReviewerID)
	require.Equal(t, "u4", prStats.Reassignments[0].NewReviewerID)
}

func TestRepositoryDeactivationIsNotRetroactive(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	_, err := repo.CreateTeam(ctx, entities.Team{Name: "platform", Members: []entities.User{
		{ID: "p1", Username: "Eve", IsActive: true},
		{ID: "p2", Username: "Frank", IsActive: true},
		{ID: "p3", Username: "Grace", IsActive: true},
	}})
	require.NoError(t, err)

	pr, err := repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr-deact", Name: "Deactivation", AuthorID: "p1", Reviewers: []string{"p2"},
	})
	require.NoError(t, err)

	updated, err := repo.SetUserActive(ctx, "p2", false)
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	// Existing assignments survive deactivation untouched.
	prs, err := repo.GetUserReviews(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, prs, 1)
	require.Equal(t, pr.ID, prs[0].ID)

	// An inactive user cannot receive a new assignment at creation time.
	_, err = repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr-deact2", Name: "Inactive reviewer", AuthorID: "p1", Reviewers: []string{"p2"},
	})
	require.ErrorIs(t, err, entities.ErrNoCandidate)

	// Nor via reassignment.
	_, err = repo.ReassignReviewer(ctx, pr.ID, "p2", "p3")
	require.NoError(t, err)
	_, err = repo.ReassignReviewer(ctx, pr.ID, "p3", "p2")
	require.ErrorIs(t, err, entities.ErrNoCandidate)

	// Self-swap of an already assigned reviewer reports the duplicate,
	// even when that reviewer is inactive.
	_, err = repo.SetUserActive(ctx, "p3", false)
	require.NoError(t, err)
	_, err = repo.ReassignReviewer(ctx, pr.ID, "p3", "p3")
	require.ErrorIs(t, err, entities.ErrReviewerAssigned)

	members, err := repo.GetTeamMembers(ctx, "platform", false)
	require.NoError(t, err)
	require.Len(t, members, 3)

	active, err := repo.GetTeamMembers(ctx, "platform", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "p1", active[0].ID)
}

func TestRepositoryStatsIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	_, err := repo.CreateTeam(ctx, entities.Team{Name: "backend", Members: []entities.User{
		{ID: "u1", Username: "Alice", IsActive: true},
		{ID: "u2", Username: "Bob", IsActive: true},
		{ID: "u3", Username: "Charlie", IsActive: true},
		{ID: "u4", Username: "Dana", IsActive: true},
	}})
	require.NoError(t, err)

	pr1, err := repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr1", Name: "Init", AuthorID: "u1", Reviewers: []string{"u2", "u3"},
	})
	require.NoError(t, err)
	pr2, err := repo.CreatePR(ctx, entities.PullRequest{
		ID: "pr2", Name: "Feature", AuthorID: "u1", Reviewers: []string{"u2"},
	})
	require.NoError(t, err)

	_, err = repo.MergePR(ctx, pr2.ID)
	require.NoError(t, err)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	prCounts := map[string]int64{}
	for _, s := range stats.ByPR {
		prCounts[s.PRID] = s.AssignCnt
	}
	require.Equal(t, int64(2), prCounts[pr1.ID])
	require.Equal(t, int64(1), prCounts[pr2.ID])

	userCounts := map[string]int64{}
	for _, s := range stats.ByUser {
		userCounts[s.UserID] = s.AssignCnt
	}
	require.Equal(t, int64(2), userCounts["u2"])
	require.Equal(t, int64(1), userCounts["u3"])

	statusCounts := map[entities.PullRequestStatus]int64{}
	for _, s := range stats.ByStatus {
		statusCounts[s.Status] = s.PRCount
	}
	require.Equal(t, int64(1), statusCounts[entities.StatusOpen])
	require.Equal(t, int64(1), statusCounts[entities.StatusMerged])

	teamCounts := map[string]int64{}
	for _, s := range stats.ByTeam {
		teamCounts[s.TeamName] = s.AssignCnt
	}
	require.Equal(t, int64(3), teamCounts["backend"])

	open := entities.StatusOpen
	summary, err := repo.StatsSummary(ctx, entities.StatsFilter{Status: &open, Limit: 5})
	require.NoError(t, err)
	require.NotEmpty(t, summary.TopReviewers)
	for _, s := range summary.PRStatusCounts {
		require.Equal(t, entities.StatusOpen, s.Status)
	}

	reviewer, err := repo.ReviewerStats(ctx, "u2", 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), reviewer.AssignCnt)
	require.Equal(t, int64(1), reviewer.OpenPRCnt)
	require.Equal(t, int64(1), reviewer.MergedPRCnt)
	require.Len(t, reviewer.RecentPRs, 2)

	_, err = repo.ReviewerStats(ctx, "nobody", 10)
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	_, err = repo.PRStats(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrPRNotFound)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=review_workflow_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "review_workflow_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=review_workflow_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
