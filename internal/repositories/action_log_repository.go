package repositories

import (
	"context"

	"estate-backoffice/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActionLogRepository struct {
	DB *pgxpool.Pool
}

func NewActionLogRepository(db *pgxpool.Pool) *ActionLogRepository {
	return &ActionLogRepository{DB: db}
}

// Create records a console action
func (r *ActionLogRepository) Create(ctx context.Context, log *models.ActionLog) error {
	query := `
		INSERT INTO action_logs (
			request_id, session_id, username, role, action_type, method,
			path, status_code, duration_ms, ip_address, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		log.RequestID, log.SessionID, log.Username, log.Role, log.ActionType, log.Method,
		log.Path, log.StatusCode, log.DurationMs, log.IPAddress, log.Description,
	).Scan(&log.ID, &log.CreatedAt)
}

// ListRecent returns the newest actions first
func (r *ActionLogRepository) ListRecent(ctx context.Context, limit int) ([]models.ActionLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, request_id, session_id, username, role, action_type, method,
			path, status_code, duration_ms, COALESCE(ip_address, ''), description, created_at
		FROM action_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActionLog
	for rows.Next() {
		var l models.ActionLog
		if err := rows.Scan(
			&l.ID, &l.RequestID, &l.SessionID, &l.Username, &l.Role, &l.ActionType, &l.Method,
			&l.Path, &l.StatusCode, &l.DurationMs, &l.IPAddress, &l.Description, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
