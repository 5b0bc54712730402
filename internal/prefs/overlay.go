package prefs

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Preference keys.
const (
	KeyClosed   = "gpu-overlay-closed"
	KeyPosition = "gpu-overlay-position"
)

// Point is an overlay position in terminal cells from the top-left corner.
type Point struct {
	X int
	Y int
}

// positionRecord is the stored form: two coordinate strings.
type positionRecord struct {
	Left string `json:"left"`
	Top  string `json:"top"`
}

// LoadPosition reads the saved overlay position. ok is false when nothing is
// saved or the saved value is malformed; callers fall back to default placement.
func LoadPosition(s Store) (Point, bool) {
	raw, ok := s.Get(KeyPosition)
	if !ok || raw == "" {
		return Point{}, false
	}

	var rec positionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Point{}, false
	}
	x, err := parseCoord(rec.Left)
	if err != nil {
		return Point{}, false
	}
	y, err := parseCoord(rec.Top)
	if err != nil {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// SavePosition stores p.
func SavePosition(s Store, p Point) error {
	data, err := json.Marshal(positionRecord{
		Left: strconv.Itoa(p.X),
		Top:  strconv.Itoa(p.Y),
	})
	if err != nil {
		return err
	}
	return s.Set(KeyPosition, string(data))
}

// IsClosed reports whether the overlay was dismissed.
func IsClosed(s Store) bool {
	v, _ := s.Get(KeyClosed)
	return v == "true"
}

// SetClosed records that the overlay was dismissed.
func SetClosed(s Store) error {
	return s.Set(KeyClosed, "true")
}

// ClearClosed forgets the dismissed flag.
func ClearClosed(s Store) error {
	return s.Delete(KeyClosed)
}

// Reset removes every overlay preference.
func Reset(s Store) error {
	if err := s.Delete(KeyClosed); err != nil {
		return err
	}
	return s.Delete(KeyPosition)
}

// parseCoord accepts "12" and "12px".
func parseCoord(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.Atoi(s)
}
