package data

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/VickyRohilla862/ResiliTrack-AI/internal/biz"
)

type chatRepo struct {
	data *Data
	log  *log.Helper
}

// NewChatRepo builds the sql-backed conversation repository.
func NewChatRepo(data *Data, logger log.Logger) biz.ChatRepo {
	return &chatRepo{data: data, log: log.NewHelper(logger)}
}

func (r *chatRepo) Append(ctx context.Context, userID int, m *biz.ChatMessage) (int, error) {
	var analysisJSON sql.NullString
	if len(m.AnalysisData) > 0 {
		analysisJSON = sql.NullString{String: string(m.AnalysisData), Valid: true}
	}

	var id int
	err := r.data.db.QueryRowContext(ctx, `
		INSERT INTO chat_messages (user_id, message, sender, scenario, analysis_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		userID, m.Message, m.Sender, nullable(m.Scenario), analysisJSON, now()).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *chatRepo) List(ctx context.Context, userID int) ([]*biz.ChatMessage, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, message, sender, scenario, analysis_json, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*biz.ChatMessage
	for rows.Next() {
		var m biz.ChatMessage
		var scenario, analysisJSON sql.NullString
		if err := rows.Scan(&m.ID, &m.Message, &m.Sender, &scenario, &analysisJSON, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Scenario = scenario.String
		if analysisJSON.Valid && json.Valid([]byte(analysisJSON.String)) {
			m.AnalysisData = json.RawMessage(analysisJSON.String)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *chatRepo) Delete(ctx context.Context, id, userID int) error {
	_, err := r.data.db.ExecContext(ctx, `
		DELETE FROM chat_messages WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *chatRepo) Clear(ctx context.Context, userID int) error {
	_, err := r.data.db.ExecContext(ctx, `
		DELETE FROM chat_messages WHERE user_id = $1`, userID)
	return err
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
