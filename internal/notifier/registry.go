package notifier

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Chat is a chat or group identifier discovered through a webhook event.
type Chat struct {
	Provider     string    `json:"provider"`
	ChatID       string    `json:"chatId"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// Registry records discovered chat ids so operators can look them up
// instead of copying them out of the logs.
type Registry interface {
	Save(provider, chatID string) error
	List() ([]Chat, error)
}

// InitRegistry opens the sqlite registry and bootstraps its schema.
func InitRegistry(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to registry: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS chats (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        provider TEXT NOT NULL,
        chat_id TEXT NOT NULL,
        discovered_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        UNIQUE (provider, chat_id)
    );
    `

	_, err := db.Exec(schema)
	return err
}

type ChatRegistry struct {
	db *sql.DB
}

var _ Registry = (*ChatRegistry)(nil)

func NewChatRegistry(db *sql.DB) *ChatRegistry {
	return &ChatRegistry{db: db}
}

// Save records a discovered chat id. Re-discovering a known id is a no-op.
func (r *ChatRegistry) Save(provider, chatID string) error {
	_, err := r.db.Exec(
		"INSERT OR IGNORE INTO chats (provider, chat_id) VALUES (?, ?)",
		provider, chatID,
	)
	return err
}

// List returns every discovered chat id, newest first.
func (r *ChatRegistry) List() ([]Chat, error) {
	rows, err := r.db.Query(
		"SELECT provider, chat_id, discovered_at FROM chats ORDER BY discovered_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.Provider, &c.ChatID, &c.DiscoveredAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
