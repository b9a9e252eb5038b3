package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kms-app/dinnerboard/internal/models"
)

func (s *Store) GetNickname() (string, error) {
	row := s.db.QueryRow("SELECT value FROM settings WHERE key = 'nickname'")

	var name string
	err := row.Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *Store) SaveNickname(name string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES ('nickname', ?)", name)
	return err
}

func (s *Store) GetAnswers(ownerID string) (models.AnswerRecord, error) {
	row := s.db.QueryRow("SELECT record FROM answers WHERE owner_id = ?", ownerID)

	var blob string
	err := row.Scan(&blob)
	if err == sql.ErrNoRows {
		return models.AnswerRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	rec, err := models.DecodeAnswers([]byte(blob))
	if err != nil {
		// A corrupt blob is recoverable: reconciliation rebuilds defaults.
		return models.AnswerRecord{}, nil
	}
	return rec, nil
}

func (s *Store) SaveAnswers(ownerID string, rec models.AnswerRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	_, err = s.db.Exec(`
INSERT INTO answers (owner_id, record, updated_at) VALUES (?, ?, ?)
ON CONFLICT(owner_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		ownerID, string(blob), time.Now().Format(time.RFC3339))
	return err
}

func (s *Store) DeleteAnswers(ownerID string) error {
	_, err := s.db.Exec("DELETE FROM answers WHERE owner_id = ?", ownerID)
	return err
}
