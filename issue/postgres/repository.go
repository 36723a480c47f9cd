package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/marcelsud/issue-webhooks/issue"
)

/* PostgreSQL implementation of issue.Repository
 * Placeholders are $1, $2...; UPDATE ... RETURNING gives back the stored row
 * in the same round trip
 */

const columns = "id, title, description, category, status, priority, assignee, updated_by, created_at, updated_at"

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens a PostgreSQL repository with a custom pool.
// Zero values leave the database/sql defaults in place.
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIssue(row scanner) (issue.Issue, error) {
	var i issue.Issue
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Category,
		&i.Status,
		&i.Priority,
		&i.Assignee,
		&i.UpdatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// Select fetches an issue by id
func (r *Repository) Select(ctx context.Context, id string) (issue.Issue, error) {
	query := "SELECT " + columns + " FROM issues WHERE id = $1"

	i, err := scanIssue(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return issue.Issue{}, issue.ErrNotFound
	}
	if err != nil {
		return issue.Issue{}, fmt.Errorf("selecting issue: %w", err)
	}

	return i, nil
}

// List returns issues matching filter, newest first
func (r *Repository) List(ctx context.Context, filter issue.Filter) ([]issue.Issue, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != "" {
		where = append(where, "status = "+arg(filter.Status))
	}
	if filter.Priority != "" {
		where = append(where, "priority = "+arg(filter.Priority))
	}
	if filter.Search != "" {
		p := arg("%" + escapeLike(filter.Search) + "%")
		where = append(where, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}

	query := "SELECT " + columns + " FROM issues"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	issues := []issue.Issue{}
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}

	return issues, nil
}

// escapeLike makes % and _ in user input match literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

// Insert stores a new issue
func (r *Repository) Insert(ctx context.Context, i issue.Issue) error {
	query := `
		INSERT INTO issues (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		i.ID, i.Title, i.Description, i.Category,
		i.Status, i.Priority, i.Assignee, i.UpdatedBy,
		i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}

	return nil
}

// UpdateStatus sets status and updated_by and returns the updated row
func (r *Repository) UpdateStatus(ctx context.Context, id string, status issue.Status, updatedBy string) (issue.Issue, error) {
	query := `
		UPDATE issues
		SET status = $1, updated_by = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + columns

	i, err := scanIssue(r.DB.QueryRowContext(ctx, query, status, updatedBy, id))
	if errors.Is(err, sql.ErrNoRows) {
		return issue.Issue{}, issue.ErrNotFound
	}
	if err != nil {
		return issue.Issue{}, fmt.Errorf("updating issue status: %w", err)
	}

	return i, nil
}

// Assign sets assignee and updated_by and returns the updated row
func (r *Repository) Assign(ctx context.Context, id string, assignee string, updatedBy string) (issue.Issue, error) {
	query := `
		UPDATE issues
		SET assignee = $1, updated_by = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + columns

	i, err := scanIssue(r.DB.QueryRowContext(ctx, query, assignee, updatedBy, id))
	if errors.Is(err, sql.ErrNoRows) {
		return issue.Issue{}, issue.ErrNotFound
	}
	if err != nil {
		return issue.Issue{}, fmt.Errorf("assigning issue: %w", err)
	}

	return i, nil
}

// Close closes the database connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable creates the issues table if it does not exist
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS issues (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			assignee TEXT NOT NULL DEFAULT '',
			updated_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating issues table: %w", err)
	}

	// tables created before assignment existed
	if _, err := r.DB.ExecContext(ctx, `ALTER TABLE issues ADD COLUMN IF NOT EXISTS assignee TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("adding assignee column: %w", err)
	}
	return nil
}
