package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/dmafb/checkin/internal/survey"
)

// progressKey builds the composite (user, survey) key. Keying by user keeps
// progress records from bleeding across accounts on a shared device.
func progressKey(userID, surveyID string) string {
	return userID + "/" + surveyID
}

// GetProgress returns the stored progress record for (userID, surveyID).
// The second return value is false when no record exists.
func (s *Store) GetProgress(userID, surveyID string) (survey.Progress, bool, error) {
	raw, err := s.get(bucketProgress, progressKey(userID, surveyID))
	if errors.Is(err, ErrNotFound) {
		return survey.Progress{}, false, nil
	}
	if err != nil {
		return survey.Progress{}, false, err
	}

	var p survey.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return survey.Progress{}, false, fmt.Errorf("failed to decode progress record: %w", err)
	}
	return p, true, nil
}

// PutProgress stores a progress record under (userID, surveyID). Last write
// wins; there is no conflict resolution.
func (s *Store) PutProgress(userID, surveyID string, p survey.Progress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode progress record: %w", err)
	}
	return s.put(bucketProgress, progressKey(userID, surveyID), raw)
}

// ListProgress returns every stored progress record for one user, in key
// order. Used by the dashboard to derive local activity trends.
func (s *Store) ListProgress(userID string) ([]survey.Progress, error) {
	prefix := []byte(userID + "/")
	var records []survey.Progress

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketProgress).Cursor()
		for k, v := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, v = c.Next() {
			var p survey.Progress
			if err := json.Unmarshal(v, &p); err != nil {
				s.logger.Warn("skipping undecodable progress record")
				continue
			}
			records = append(records, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
