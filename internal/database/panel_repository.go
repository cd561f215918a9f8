package database

import (
	"context"
	"database/sql"
	"time"
)

const panelRepoTimeout = 2 * time.Second

// PanelEntry records where the player control panel for a conversation
// currently lives, so keyboard updates can target the existing message.
type PanelEntry struct {
	ChatID      int64
	PanelChatID int64
	MessageID   int64
}

// PanelRepository persists panel entries. All methods are no-ops on a nil
// repository or handle: the bot runs fine without a database, it just
// re-sends panels instead of editing them.
type PanelRepository struct {
	db *sql.DB
}

func NewPanelRepository(db *sql.DB) *PanelRepository {
	return &PanelRepository{db: db}
}

func (r *PanelRepository) Upsert(entry PanelEntry) error {
	if r == nil || r.db == nil {
		return nil
	}
	if entry.ChatID == 0 || entry.MessageID == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), panelRepoTimeout)
	defer cancel()

	const query = `
		INSERT INTO panel_entries (chat_id, panel_chat_id, message_id, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (chat_id)
		DO UPDATE SET
			panel_chat_id = EXCLUDED.panel_chat_id,
			message_id = EXCLUDED.message_id,
			updated_at = NOW();
	`

	_, err := r.db.ExecContext(ctx, query, entry.ChatID, entry.PanelChatID, entry.MessageID)
	return err
}

func (r *PanelRepository) Get(chatID int64) (PanelEntry, bool, error) {
	if r == nil || r.db == nil {
		return PanelEntry{}, false, nil
	}
	if chatID == 0 {
		return PanelEntry{}, false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), panelRepoTimeout)
	defer cancel()

	const query = `
		SELECT panel_chat_id, message_id
		FROM panel_entries
		WHERE chat_id = $1
	`

	entry := PanelEntry{ChatID: chatID}
	err := r.db.QueryRowContext(ctx, query, chatID).Scan(&entry.PanelChatID, &entry.MessageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return PanelEntry{}, false, nil
		}
		return PanelEntry{}, false, err
	}

	return entry, true, nil
}

func (r *PanelRepository) Delete(chatID int64) error {
	if r == nil || r.db == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), panelRepoTimeout)
	defer cancel()

	const query = `
		DELETE FROM panel_entries
		WHERE chat_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, chatID)
	return err
}
