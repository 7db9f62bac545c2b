package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
	"github.com/Kadoinkus/chatbot-platform/domains/assistant"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS workspaces (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			client_id TEXT NOT NULL,
			plan TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS assistants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT DEFAULT '',
			image TEXT DEFAULT '',
			workspace_id TEXT NOT NULL,
			client_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			model TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			client_id TEXT NOT NULL,
			assistant_slug TEXT NOT NULL,
			user_id TEXT DEFAULT '',
			returning_user INTEGER DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			message_count INTEGER DEFAULT 0,
			duration_sec REAL DEFAULT 0,
			country TEXT DEFAULT '',
			device TEXT DEFAULT '',
			language TEXT DEFAULT '',
			browser TEXT DEFAULT '',
			animations INTEGER DEFAULT 0,
			easter_eggs INTEGER DEFAULT 0,
			questions TEXT DEFAULT '[]',
			unanswered TEXT DEFAULT '[]',
			analyzed INTEGER DEFAULT 0,
			a_category TEXT DEFAULT '',
			a_sentiment TEXT DEFAULT '',
			a_resolution TEXT DEFAULT '',
			a_escalated INTEGER DEFAULT 0,
			a_outcome TEXT DEFAULT '',
			a_engagement TEXT DEFAULT '',
			a_type TEXT DEFAULT '',
			a_chat_tokens INTEGER DEFAULT 0,
			a_analysis_tokens INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assistants_client ON assistants(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_client_time ON sessions(client_id, started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_slug ON sessions(assistant_slug)`,
	}

	for _, query := range queries {
		if _, err := r.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const sessionColumns = `s.id, s.assistant_slug, s.user_id, s.returning_user, s.started_at, s.ended_at,
	s.message_count, s.duration_sec, s.country, s.device, s.language, s.browser,
	s.animations, s.easter_eggs, s.questions, s.unanswered,
	s.analyzed, s.a_category, s.a_sentiment, s.a_resolution, s.a_escalated,
	s.a_outcome, s.a_engagement, s.a_type, s.a_chat_tokens, s.a_analysis_tokens`

// GetSessionsForClient returns the client's raw sessions within the filter
// window and scope.
func (r *SQLiteRepository) GetSessionsForClient(ctx context.Context, clientID string, filters analytics.SessionFilters) ([]analytics.RawSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions s WHERE s.client_id = ?`
	args := []interface{}{clientID}

	start, end := filters.Range(time.Now())
	if !start.IsZero() {
		query += ` AND s.started_at >= ?`
		args = append(args, start)
	}
	query += ` AND s.started_at < ?`
	args = append(args, end)

	if filters.Workspace != "" && filters.Workspace != analytics.ScopeAll {
		query += ` AND s.assistant_slug IN (SELECT slug FROM assistants WHERE workspace_id = ?)`
		args = append(args, filters.Workspace)
	}
	if ids := explicitAssistantIDs(filters); len(ids) > 0 {
		placeholders := strings.Repeat("?,", len(ids))
		query += ` AND s.assistant_slug IN (SELECT slug FROM assistants WHERE id IN (` + placeholders[:len(placeholders)-1] + `))`
		for _, id := range ids {
			args = append(args, id)
		}
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

// explicitAssistantIDs strips the "all" sentinel from the assistant scope.
func explicitAssistantIDs(filters analytics.SessionFilters) []string {
	var ids []string
	for _, id := range filters.AssistantIDs {
		if id != "" && id != analytics.ScopeAll {
			ids = append(ids, id)
		}
	}
	return ids
}

func scanSession(rows *sql.Rows) (analytics.RawSession, error) {
	var s analytics.RawSession
	var endedAt sql.NullTime
	var questions, unanswered string
	var analyzed bool
	var a analytics.Analysis

	err := rows.Scan(
		&s.ID, &s.AssistantSlug, &s.UserID, &s.Returning, &s.StartedAt, &endedAt,
		&s.MessageCount, &s.DurationSec, &s.Country, &s.Device, &s.Language, &s.Browser,
		&s.Animations, &s.EasterEggs, &questions, &unanswered,
		&analyzed, &a.Category, &a.Sentiment, &a.ResolutionStatus, &a.Escalated,
		&a.SessionOutcome, &a.EngagementLevel, &a.ConversationType, &a.ChatTokens, &a.AnalysisTokens,
	)
	if err != nil {
		return s, err
	}

	if endedAt.Valid {
		s.EndedAt = endedAt.Time
	}
	// Malformed question payloads degrade to empty lists
	json.Unmarshal([]byte(questions), &s.Questions)
	json.Unmarshal([]byte(unanswered), &s.Unanswered)
	if analyzed {
		s.Analysis = &a
	}
	return s, nil
}

// GetAssistantsForClient returns the minimal assistant identities for the
// analytics layer.
func (r *SQLiteRepository) GetAssistantsForClient(ctx context.Context, clientID string) ([]analytics.AssistantRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, image, workspace_id, status, client_id
		FROM assistants WHERE client_id = ? ORDER BY created_at ASC`, clientID,
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

// GetWorkspacesForClient returns the client's workspaces.
func (r *SQLiteRepository) GetWorkspacesForClient(ctx context.Context, clientID string) ([]analytics.Workspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, client_id, plan FROM workspaces WHERE client_id = ? ORDER BY created_at ASC`, clientID,
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

// SaveSession inserts or replaces a raw session.
func (r *SQLiteRepository) SaveSession(ctx context.Context, clientID string, session *analytics.RawSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	questions, _ := json.Marshal(session.Questions)
	unanswered, _ := json.Marshal(session.Unanswered)

	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (
			id, client_id, assistant_slug, user_id, returning_user, started_at, ended_at,
			message_count, duration_sec, country, device, language, browser,
			animations, easter_eggs, questions, unanswered
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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

// SaveAnalysis attaches analysis results to an existing session.
func (r *SQLiteRepository) SaveAnalysis(ctx context.Context, sessionID string, analysis *analytics.Analysis) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET analyzed = 1, a_category = ?, a_sentiment = ?, a_resolution = ?,
			a_escalated = ?, a_outcome = ?, a_engagement = ?, a_type = ?,
			a_chat_tokens = ?, a_analysis_tokens = ?
		WHERE id = ?`,
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

func (r *SQLiteRepository) Create(ctx context.Context, a *assistant.Assistant) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Slug, a.Description, a.Image, a.WorkspaceID, a.ClientID, a.Status, a.Model, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*assistant.Assistant, error) {
	a := &assistant.Assistant{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description, image, workspace_id, client_id, status, model, created_at, updated_at
		FROM assistants WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.Slug, &a.Description, &a.Image, &a.WorkspaceID, &a.ClientID, &a.Status, &a.Model, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assistant not found")
	}
	return a, err
}

func (r *SQLiteRepository) GetAllForClient(ctx context.Context, clientID string) ([]*assistant.Assistant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, description, image, workspace_id, client_id, status, model, created_at, updated_at
		FROM assistants WHERE client_id = ? ORDER BY created_at DESC`, clientID,
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

func (r *SQLiteRepository) Update(ctx context.Context, a *assistant.Assistant) error {
	a.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE assistants SET name = ?, description = ?, image = ?, status = ?, model = ?, updated_at = ? WHERE id = ?`,
		a.Name, a.Description, a.Image, a.Status, a.Model, a.UpdatedAt, a.ID,
	)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM assistants WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) CreateWorkspace(ctx context.Context, w *assistant.Workspace) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workspaces (id, name, client_id, plan, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.ClientID, w.Plan, w.CreatedAt, w.UpdatedAt,
	)
	return err
}

func (r *SQLiteRepository) GetWorkspaces(ctx context.Context, clientID string) ([]*assistant.Workspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, client_id, plan, created_at, updated_at FROM workspaces WHERE client_id = ? ORDER BY created_at ASC`, clientID,
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

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
