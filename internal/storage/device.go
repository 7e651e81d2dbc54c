package storage

import (
	"errors"

	"github.com/google/uuid"
)

const keyInstallID = "installID"

// InstallID returns the stable identifier for this installation, generating
// and persisting one on first use. It is attached to log fields only.
func (s *Store) InstallID() (string, error) {
	raw, err := s.get(bucketDevice, keyInstallID)
	if err == nil && len(raw) > 0 {
		return string(raw), nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}

	id := uuid.NewString()
	if err := s.put(bucketDevice, keyInstallID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}
