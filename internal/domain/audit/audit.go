package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Event struct {
	ID        string          `json:"id"`
	ActorID   string          `json:"actorId"`
	Action    string          `json:"action"`
	EntityID  string          `json:"entityId"`
	RequestID string          `json:"requestId"`
	CreatedAt any             `json:"createdAt"`
	Details   json.RawMessage `json:"details,omitempty"`
}

type Service struct {
	DB DB
}

func New(db DB) *Service {
	return &Service{DB: db}
}

// Record appends one audit event. Used for payroll runs, archives, and
// merge-mismatch warnings that indicate a data-entry problem worth flagging.
func (s *Service) Record(ctx context.Context, actorID, action, entityID, requestID string, details any) error {
	var detailsJSON []byte
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		detailsJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_id, details_json, request_id)
    VALUES ($1,$2,$3,$4,$5)
  `, actorID, action, entityID, detailsJSON, requestID)
	return err
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, actor_user_id, action, entity_id, request_id, created_at, details_json
    FROM audit_events
    ORDER BY created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityID, &evt.RequestID, &evt.CreatedAt, &evt.Details); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}
