// Package costumes provides the read-only costume lookup table. The table is
// loaded once from an embedded JSON resource and never mutated afterwards, so
// a single *Table can be shared freely.
package costumes

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed costume-data.json
var costumeData []byte

// Costume is one known in-game costume for a character.
type Costume struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
	IsDefault *bool  `json:"isDefault,omitempty"`
}

// Table maps character display names to their known costumes.
type Table struct {
	byCharacter map[string][]Costume
}

// Load parses the embedded costume resource.
func Load() (*Table, error) {
	var byCharacter map[string][]Costume
	if err := json.Unmarshal(costumeData, &byCharacter); err != nil {
		return nil, fmt.Errorf("failed to parse costume data: %w", err)
	}
	return &Table{byCharacter: byCharacter}, nil
}

// ForCharacter returns the costumes known for a character display name.
// Unknown characters yield an empty slice, not an error.
func (t *Table) ForCharacter(character string) []Costume {
	costumes := t.byCharacter[character]
	out := make([]Costume, len(costumes))
	copy(out, costumes)
	return out
}

// Get looks up one costume by character and costume id.
func (t *Table) Get(character, costumeID string) (Costume, bool) {
	for _, costume := range t.byCharacter[character] {
		if costume.ID == costumeID {
			return costume, true
		}
	}
	return Costume{}, false
}

// All returns the full table, copied so callers cannot mutate the shared data.
func (t *Table) All() map[string][]Costume {
	out := make(map[string][]Costume, len(t.byCharacter))
	for character, costumes := range t.byCharacter {
		copied := make([]Costume, len(costumes))
		copy(copied, costumes)
		out[character] = copied
	}
	return out
}

// Characters returns the number of characters in the table.
func (t *Table) Characters() int {
	return len(t.byCharacter)
}

// Count returns the total number of costumes across all characters.
func (t *Table) Count() int {
	total := 0
	for _, costumes := range t.byCharacter {
		total += len(costumes)
	}
	return total
}
