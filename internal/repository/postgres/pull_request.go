package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drinkingsweets/avito-tech/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	prExistsQuery          = `SELECT EXISTS(SELECT 1 FROM pull_requests WHERE id=$1)`
	selectUserActiveQuery  = `SELECT is_active FROM users WHERE id=$1`
	insertPRQuery          = `INSERT INTO pull_requests(id, name, author_id, status) VALUES ($1,$2,$3,'OPEN') RETURNING created_at`
	selectPRForUpdateQuery = `SELECT id, name, author_id, status, created_at, merged_at FROM pull_requests WHERE id=$1 FOR UPDATE`
	updatePRMergedQuery    = `UPDATE pull_requests SET status='MERGED', merged_at=NOW() WHERE id=$1 RETURNING merged_at`
	selectReviewersQuery   = `SELECT reviewer_id FROM pr_reviewers WHERE pr_id=$1`
	deleteReviewerQuery    = `DELETE FROM pr_reviewers WHERE pr_id=$1 AND reviewer_id=$2`
	insertReviewerQuery    = `INSERT INTO pr_reviewers(pr_id, reviewer_id) VALUES ($1,$2)`
	insertHistoryQuery     = `INSERT INTO pr_reassignment_history(pr_id, old_reviewer_id, new_reviewer_id) VALUES ($1,$2,$3)`
)

// CreatePR persists an OPEN pull request together with its reviewer set.
// Checks run in order: duplicate id, author existence, then per-reviewer
// existence and activity. Duplicate reviewer ids collapse to one assignment.
func (p *Postgres) CreatePR(ctx context.Context, pr entities.PullRequest) (res *entities.PullRequest, err error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, prExistsQuery, pr.ID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check pr: %w", err)
	}
	if exists {
		return nil, entities.ErrPRExists
	}

	var authorExists bool
	if err := tx.QueryRow(ctx, userExistsQuery, pr.AuthorID).Scan(&authorExists); err != nil {
		return nil, fmt.Errorf("author lookup: %w", err)
	}
	if !authorExists {
		p.log.Errorw("author not found", "author_id", pr.AuthorID)
		return nil, entities.ErrUserNotFound
	}

	reviewers := dedup(pr.Reviewers)
	for _, id := range reviewers {
		var active bool
		if err := tx.QueryRow(ctx, selectUserActiveQuery, id).Scan(&active); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, entities.ErrUserNotFound
			}
			return nil, fmt.Errorf("reviewer lookup: %w", err)
		}
		if !active {
			return nil, entities.ErrNoCandidate
		}
	}

	var createdAt time.Time
	if err := tx.QueryRow(ctx, insertPRQuery, pr.ID, pr.Name, pr.AuthorID).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		p.log.Errorw("failed to insert pull request", "error", err, "id", pr.ID)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrPRExists
		}
		return nil, fmt.Errorf("insert pr: %w", err)
	}

	for _, id := range reviewers {
		if _, err := tx.Exec(ctx, insertReviewerQuery, pr.ID, id); err != nil {
			p.log.Errorw("failed to insert reviewer", "error", err, "reviewer_id", id)
			return nil, fmt.Errorf("insert reviewer: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	pr.Reviewers = reviewers
	pr.Status = entities.StatusOpen
	pr.CreatedAt = &createdAt
	pr.MergedAt = nil
	p.log.Infow("pr created", "pr_id", pr.ID, "reviewers", reviewers)
	return &pr, nil
}

// MergePR transitions an OPEN pull request to MERGED. Merging a PR in any
// other status is a state conflict; MERGED is terminal.
func (p *Postgres) MergePR(ctx context.Context, prID string) (res *entities.PullRequest, err error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pr, err := p.lockPR(ctx, tx, prID)
	if err != nil {
		return nil, err
	}

	if pr.Status != entities.StatusOpen {
		return nil, entities.ErrPRNotOpen
	}

	var mergedAt time.Time
	if err := tx.QueryRow(ctx, updatePRMergedQuery, prID).Scan(&mergedAt); err != nil {
		p.log.Errorw("failed to update pr merged", "error", err, "pr_id", prID)
		return nil, fmt.Errorf("merge pr: %w", err)
	}
	pr.Status = entities.StatusMerged
	pr.MergedAt = &mergedAt

	reviewers, err := p.readReviewers(ctx, tx, prID)
	if err != nil {
		return nil, err
	}
	pr.Reviewers = reviewers

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("pr merged", "pr_id", prID)
	return pr, nil
}

// ReassignReviewer replaces oldUserID with newUserID on the PR's reviewer set.
// Delete and insert happen in one transaction; any failed check leaves the
// reviewer set exactly as it was.
func (p *Postgres) ReassignReviewer(ctx context.Context, prID, oldUserID, newUserID string) (res *entities.PullRequest, err error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pr, err := p.lockPR(ctx, tx, prID)
	if err != nil {
		return nil, err
	}

	if pr.Status == entities.StatusMerged {
		return nil, entities.ErrPRMerged
	}

	var newActive bool
	if err := tx.QueryRow(ctx, selectUserActiveQuery, newUserID).Scan(&newActive); err != nil {
		p.log.Errorw("failed to query new reviewer", "error", err, "new_reviewer", newUserID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("new reviewer lookup: %w", err)
	}
	// The activity gate guards new assignments only; a self-swap assigns
	// nobody new and falls through to the membership checks below.
	if newUserID != oldUserID && !newActive {
		return nil, entities.ErrNoCandidate
	}

	reviewers, err := p.readReviewers(ctx, tx, prID)
	if err != nil {
		return nil, err
	}

	if !contains(reviewers, oldUserID) {
		p.log.Errorw("old reviewer not assigned to PR", "pr_id", prID, "old_reviewer", oldUserID)
		return nil, entities.ErrNotAssigned
	}
	if contains(reviewers, newUserID) {
		p.log.Errorw("new reviewer already assigned to PR", "pr_id", prID, "new_reviewer", newUserID)
		return nil, entities.ErrReviewerAssigned
	}

	if _, err := tx.Exec(ctx, deleteReviewerQuery, prID, oldUserID); err != nil {
		return nil, fmt.Errorf("delete old reviewer: %w", err)
	}
	if _, err := tx.Exec(ctx, insertReviewerQuery, prID, newUserID); err != nil {
		return nil, fmt.Errorf("insert new reviewer: %w", err)
	}
	if _, err := tx.Exec(ctx, insertHistoryQuery, prID, oldUserID, newUserID); err != nil {
		return nil, fmt.Errorf("insert reassignment history: %w", err)
	}

	pr.Reviewers = append(filterOut(reviewers, oldUserID), newUserID)

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("reviewer reassigned", "pr_id", prID, "old", oldUserID, "new", newUserID)
	return pr, nil
}

func (p *Postgres) lockPR(ctx context.Context, tx pgx.Tx, prID string) (*entities.PullRequest, error) {
	var pr entities.PullRequest
	var createdAt time.Time
	if err := tx.QueryRow(ctx, selectPRForUpdateQuery, prID).
		Scan(&pr.ID, &pr.Name, &pr.AuthorID, &pr.Status, &createdAt, &pr.MergedAt); err != nil {
		p.log.Errorw("failed to select pr for update", "error", err, "pr_id", prID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrPRNotFound
		}
		return nil, fmt.Errorf("get pr: %w", err)
	}
	pr.CreatedAt = &createdAt
	return &pr, nil
}

func (p *Postgres) readReviewers(ctx context.Context, tx pgx.Tx, prID string) ([]string, error) {
	rows, err := tx.Query(ctx, selectReviewersQuery, prID)
	if err != nil {
		p.log.Errorw("failed to select reviewers", "error", err, "pr_id", prID)
		return nil, fmt.Errorf("select reviewers: %w", err)
	}
	defer rows.Close()
	revs := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			p.log.Errorw("failed to scan reviewer", "error", err)
			return nil, err
		}
		revs = append(revs, id)
	}
	if err := rows.Err(); err != nil {
		p.log.Errorw("error iterating reviewers", "error", err)
		return nil, err
	}
	return revs, nil
}

func dedup(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	res := make([]string, 0, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}

func contains(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}

func filterOut(list []string, target string) []string {
	res := make([]string, 0, len(list))
	for _, v := range list {
		if v != target {
			res = append(res, v)
		}
	}
	return res
}
