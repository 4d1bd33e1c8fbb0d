package starstore

import (
	"bytes"

	"github.com/kohaut/promis/internal/starmap"
)

// SaveStarMap serializes m and stores it under name.
func SaveStarMap(s *Store, name string, m *starmap.StarMap) error {
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return err
	}
	return s.Save(name, buf.Bytes())
}

// LoadStarMap loads the snapshot stored under name into m, replacing its
// current slots.
func LoadStarMap(s *Store, name string, m *starmap.StarMap) error {
	blob, err := s.Load(name)
	if err != nil {
		return err
	}
	return m.Load(bytes.NewReader(blob))
}
