package storage

import "errors"

// GetCache returns a cached payload by key. The second return value is false
// when nothing is cached under that key.
func (s *Store) GetCache(key string) ([]byte, bool, error) {
	raw, err := s.get(bucketCache, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// PutCache stores a cached payload, unconditionally overwriting any prior
// snapshot under the same key.
func (s *Store) PutCache(key string, data []byte) error {
	return s.put(bucketCache, key, data)
}
