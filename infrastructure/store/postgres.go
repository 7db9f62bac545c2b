package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
	"github.com/Kadoinkus/chatbot-platform/domains/assistant"
)

// PostgresRepository is the hosted deployment's session store. It serves the
// same gateway contract as the SQLite repository.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) GetSessionsForClient(ctx context.Context, clientID string, filters analytics.SessionFilters) ([]analytics.RawSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions s WHERE s.client_id = $1`
	args := []interface{}{clientID}

	start, end := filters.Range(time.Now())
	if !start.IsZero() {
		args = append(args, start)
		query += fmt.Sprintf(` AND s.started_at >= $%d`, len(args))
	}
	args = append(args, end)
	query += fmt.Sprintf(` AND s.started_at < $%d`, len(args))

	if filters.Workspace != "" && filters.Workspace != analytics.ScopeAll {
		args = append(args, filters.Workspace)
		query += fmt.Sprintf(` AND s.assistant_slug IN (SELECT slug FROM assistants WHERE workspace_id = $%d)`, len(args))
	}
	if ids := explicitAssistantIDs(filters); len(ids) > 0 {
		args = append(args, pq.Array(ids))
		query += fmt.Sprintf(` AND s.assistant_slug IN (SELECT slug FROM assistants WHERE id = ANY($%d))`, len(args))
	}
	query += ` ORDER BY s.started_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var result []analytics.RawSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		result = append(result, session)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) GetAssistantsForClient(ctx context.Context, clientID string) ([]analytics.AssistantRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, image, workspace_id, status, client_id
		FROM assistants WHERE client_id = $1 ORDER BY created_at ASC`, clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query assistants: %w", err)
	}
	defer rows.Close()

	var result []analytics.AssistantRef
	for rows.Next() {
		var a analytics.AssistantRef
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &a.Image, &a.WorkspaceID, &a.Status, &a.ClientID); err != nil {
			return nil, fmt.Errorf("failed to scan assistant: %w", err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) GetWorkspacesForClient(ctx context.Context, clientID string) ([]analytics.Workspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, client_id, plan FROM workspaces WHERE client_id = $1 ORDER BY created_at ASC`, clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces: %w", err)
	}
	defer rows.Close()

	var result []analytics.Workspace
	for rows.Next() {
		var w analytics.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.ClientID, &w.Plan); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		result = append(result, w)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) SaveSession(ctx context.Context, clientID string, session *analytics.RawSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	questions, _ := json.Marshal(session.Questions)
	unanswered, _ := json.Marshal(session.Unanswered)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (
			id, client_id, assistant_slug, user_id, returning_user, started_at, ended_at,
			message_count, duration_sec, country, device, language, browser,
			animations, easter_eggs, questions, unanswered
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET message_count = EXCLUDED.message_count,
			duration_sec = EXCLUDED.duration_sec, ended_at = EXCLUDED.ended_at`,
		session.ID, clientID, session.AssistantSlug, session.UserID, session.Returning,
		session.StartedAt, session.EndedAt, session.MessageCount, session.DurationSec,
		session.Country, session.Device, session.Language, session.Browser,
		session.Animations, session.EasterEggs, string(questions), string(unanswered),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if session.Analysis != nil {
		return r.SaveAnalysis(ctx, session.ID, session.Analysis)
	}
	return nil
}

func (r *PostgresRepository) SaveAnalysis(ctx context.Context, sessionID string, analysis *analytics.Analysis) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET analyzed = true, a_category = $1, a_sentiment = $2, a_resolution = $3,
			a_escalated = $4, a_outcome = $5, a_engagement = $6, a_type = $7,
			a_chat_tokens = $8, a_analysis_tokens = $9
		WHERE id = $10`,
		analysis.Category, analysis.Sentiment, analysis.ResolutionStatus,
		analysis.Escalated, analysis.SessionOutcome, analysis.EngagementLevel,
		analysis.ConversationType, analysis.ChatTokens, analysis.AnalysisTokens,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// Assistant CRUD

func (r *PostgresRepository) Create(ctx context.Context, a *assistant.Assistant) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Slug == "" {
		a.Slug = slugify(a.Name)
	}
	if a.Status == "" {
		a.Status = assistant.StatusActive
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assistants (id, name, slug, description, image, workspace_id, client_id, status, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Name, a.Slug, a.Description, a.Image, a.WorkspaceID, a.ClientID, a.Status, a.Model, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*assistant.Assistant, error) {
	a := &assistant.Assistant{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description, image, workspace_id, client_id, status, model, created_at, updated_at
		FROM assistants WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Slug, &a.Description, &a.Image, &a.WorkspaceID, &a.ClientID, &a.Status, &a.Model, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assistant not found")
	}
	return a, err
}

func (r *PostgresRepository) GetAllForClient(ctx context.Context, clientID string) ([]*assistant.Assistant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, description, image, workspace_id, client_id, status, model, created_at, updated_at
		FROM assistants WHERE client_id = $1 ORDER BY created_at DESC`, clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*assistant.Assistant
	for rows.Next() {
		a := &assistant.Assistant{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &a.Description, &a.Image, &a.WorkspaceID, &a.ClientID, &a.Status, &a.Model, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, a *assistant.Assistant) error {
	a.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE assistants SET name = $1, description = $2, image = $3, status = $4, model = $5, updated_at = $6 WHERE id = $7`,
		a.Name, a.Description, a.Image, a.Status, a.Model, a.UpdatedAt, a.ID,
	)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM assistants WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) CreateWorkspace(ctx context.Context, w *assistant.Workspace) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workspaces (id, name, client_id, plan, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.Name, w.ClientID, w.Plan, w.CreatedAt, w.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) GetWorkspaces(ctx context.Context, clientID string) ([]*assistant.Workspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, client_id, plan, created_at, updated_at FROM workspaces WHERE client_id = $1 ORDER BY created_at ASC`, clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*assistant.Workspace
	for rows.Next() {
		w := &assistant.Workspace{}
		if err := rows.Scan(&w.ID, &w.Name, &w.ClientID, &w.Plan, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}

	return result, rows.Err()
}
