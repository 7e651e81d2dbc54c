package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmafb/checkin/internal/api"
)

const (
	keyToken   = "authToken"
	keyProfile = "userProfile"
	keyEmail   = "userEmail"
)

// ErrNoSession is returned when no auth token is stored; callers redirect to
// the login screen.
var ErrNoSession = errors.New("storage: no stored session")

// Session is the persisted authentication state of the device.
type Session struct {
	Token   string
	Profile api.Profile
	Email   string
}

// SaveSession stores the auth token, profile, and login email after a
// successful login.
func (s *Store) SaveSession(sess Session) error {
	profile, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.put(bucketSession, keyToken, []byte(sess.Token)); err != nil {
		return err
	}
	if err := s.put(bucketSession, keyProfile, profile); err != nil {
		return err
	}
	return s.put(bucketSession, keyEmail, []byte(sess.Email))
}

// LoadSession returns the stored session. ErrNoSession when no token exists.
func (s *Store) LoadSession() (Session, error) {
	token, err := s.get(bucketSession, keyToken)
	if errors.Is(err, ErrNotFound) || (err == nil && len(token) == 0) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}

	sess := Session{Token: string(token)}
	if raw, err := s.get(bucketSession, keyProfile); err == nil {
		if err := json.Unmarshal(raw, &sess.Profile); err != nil {
			return Session{}, fmt.Errorf("failed to decode stored profile: %w", err)
		}
	}
	if raw, err := s.get(bucketSession, keyEmail); err == nil {
		sess.Email = string(raw)
	}
	return sess, nil
}

// ClearSession removes the token, profile, and email on logout. Progress
// records and cached payloads are left in place.
func (s *Store) ClearSession() error {
	return s.delete(bucketSession, keyToken, keyProfile, keyEmail)
}
