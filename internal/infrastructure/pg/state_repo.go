package pg

import (
	"context"
	"errors"
	"fmt"

	"pricebot/internal/application"
	"pricebot/internal/domain"
	"pricebot/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ application.StateStore = (*StateRepo)(nil)

// StateRepo keeps one live_message row per chat.
type StateRepo struct {
	db     *DB
	chatID string
}

func NewStateRepo(db *DB, chatID string) *StateRepo {
	return &StateRepo{db: db, chatID: chatID}
}

func (r *StateRepo) Load(ctx context.Context) (domain.State, error) {
	const q = `SELECT message_id, created_at FROM live_message WHERE chat_id=$1`
	var live domain.LiveMessage
	err := r.db.Pool.QueryRow(ctx, q, r.chatID).Scan(&live.ID, &live.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.State{}, nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("load live_message: %w", err)
	}
	live.CreatedAt = live.CreatedAt.UTC()
	return domain.State{Live: &live}, nil
}

func (r *StateRepo) Save(ctx context.Context, st domain.State) error {
	log := logx.WithFields(ctx).With(
		zap.String("repo", "live_message"),
		zap.String("chat_id", r.chatID),
	)
	if st.Live == nil {
		tag, err := r.db.Pool.Exec(ctx, `DELETE FROM live_message WHERE chat_id=$1`, r.chatID)
		if err != nil {
			return fmt.Errorf("clear live_message: %w", err)
		}
		log.Debug("sql.exec_success", zap.String("operation", "clear"), zap.Int64("rows_affected", tag.RowsAffected()))
		return nil
	}

	const up = `
        INSERT INTO live_message(chat_id, message_id, created_at, updated_at)
        VALUES ($1, $2, $3, now())
        ON CONFLICT (chat_id) DO UPDATE
          SET message_id=EXCLUDED.message_id, created_at=EXCLUDED.created_at, updated_at=now()`
	tag, err := r.db.Pool.Exec(ctx, up, r.chatID, st.Live.ID, st.Live.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert live_message: %w", err)
	}
	log.Debug("sql.exec_success",
		zap.String("operation", "upsert"),
		zap.String("message_id", st.Live.ID),
		zap.Int64("rows_affected", tag.RowsAffected()),
	)
	return nil
}

func (r *StateRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }
