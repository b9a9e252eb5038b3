package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/remote"
)

func (s *Store) PutRecord(rec models.UserRecord) (models.UserRecord, error) {
	if s.db == nil {
		return models.UserRecord{}, errNotLoaded
	}

	blob, err := json.Marshal(rec.Answers)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("failed to encode answers: %w", err)
	}

	row := s.db.QueryRow(`
INSERT INTO records (owner_id, nickname, answers, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner_id) DO UPDATE
SET nickname = excluded.nickname, answers = excluded.answers, updated_at = excluded.updated_at
RETURNING updated_at`, rec.OwnerID, rec.Nickname, string(blob))

	var updatedAt time.Time
	if err := row.Scan(&updatedAt); err != nil {
		return models.UserRecord{}, err
	}

	rec.UpdatedAt = updatedAt
	return rec, nil
}

func (s *Store) GetAllRecords() ([]models.UserRecord, error) {
	if s.db == nil {
		return nil, errNotLoaded
	}

	rows, err := s.db.Query(`
SELECT owner_id, nickname, answers, updated_at
FROM records
ORDER BY updated_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.UserRecord
	for rows.Next() {
		var r models.UserRecord
		var blob string

		if err := rows.Scan(&r.OwnerID, &r.Nickname, &blob, &r.UpdatedAt); err != nil {
			return nil, err
		}

		answers, err := models.DecodeAnswers([]byte(blob))
		if err != nil {
			return nil, fmt.Errorf("failed to decode answers for %s: %w", r.OwnerID, err)
		}
		r.Answers = answers

		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) DeleteRecord(ownerID string) error {
	if s.db == nil {
		return errNotLoaded
	}

	res, err := s.db.Exec("DELETE FROM records WHERE owner_id = $1", ownerID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return remote.ErrRecordNotFound
	}
	return nil
}
