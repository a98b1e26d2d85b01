package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkingsweets/avito-tech/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertTeamQuery = "INSERT INTO teams(name) VALUES($1) RETURNING id"
	upsertUserQuery = `
INSERT INTO users(id, username, team_id, is_active)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, team_id = EXCLUDED.team_id, is_active = EXCLUDED.is_active
`
	selectTeamIDQuery      = "SELECT id FROM teams WHERE name=$1"
	selectTeamMembersQuery = "SELECT id, username, is_active FROM users WHERE team_id=$1 ORDER BY id"
	selectActiveMembers    = "SELECT id, username, is_active FROM users WHERE team_id=$1 AND is_active=true ORDER BY id"
	selectTeamReviewers    = `
SELECT DISTINCT u.id, u.username, u.is_active
FROM users u
JOIN pr_reviewers r ON r.reviewer_id = u.id
WHERE u.team_id = $1
ORDER BY u.id`
)

// CreateTeam inserts a team and upserts its members in one transaction.
func (p *Postgres) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var teamID int64
	if err := tx.QueryRow(ctx, insertTeamQuery, team.Name).Scan(&teamID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrTeamExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}

	for _, m := range team.Members {
		if _, err := tx.Exec(ctx, upsertUserQuery, m.ID, m.Username, teamID, m.IsActive); err != nil {
			return nil, fmt.Errorf("upsert user: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("team created", "team", team.Name, "members", len(team.Members))
	return p.GetTeam(ctx, team.Name)
}

// GetTeam fetches team with members by name.
func (p *Postgres) GetTeam(ctx context.Context, name string) (*entities.Team, error) {
	teamID, err := p.teamID(ctx, name)
	if err != nil {
		return nil, err
	}

	members, err := p.queryMembers(ctx, selectTeamMembersQuery, teamID, name)
	if err != nil {
		return nil, err
	}

	return &entities.Team{Name: name, Members: members}, nil
}

// GetTeamMembers returns the roster of a team, optionally active users only.
func (p *Postgres) GetTeamMembers(ctx context.Context, name string, activeOnly bool) ([]entities.User, error) {
	teamID, err := p.teamID(ctx, name)
	if err != nil {
		return nil, err
	}

	query := selectTeamMembersQuery
	if activeOnly {
		query = selectActiveMembers
	}
	return p.queryMembers(ctx, query, teamID, name)
}

// GetTeamReviewers returns team members that are assigned as a reviewer on any PR.
func (p *Postgres) GetTeamReviewers(ctx context.Context, name string) ([]entities.User, error) {
	teamID, err := p.teamID(ctx, name)
	if err != nil {
		return nil, err
	}
	return p.queryMembers(ctx, selectTeamReviewers, teamID, name)
}

func (p *Postgres) teamID(ctx context.Context, name string) (int64, error) {
	var teamID int64
	if err := p.db.QueryRow(ctx, selectTeamIDQuery, name).Scan(&teamID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, entities.ErrTeamNotFound
		}
		return 0, fmt.Errorf("get team: %w", err)
	}
	return teamID, nil
}

func (p *Postgres) queryMembers(ctx context.Context, query string, teamID int64, teamName string) ([]entities.User, error) {
	rows, err := p.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}
	defer rows.Close()

	members := make([]entities.User, 0)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Username, &u.IsActive); err != nil {
			return nil, fmt.Errorf("scan members: %w", err)
		}
		u.TeamName = teamName
		members = append(members, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}
