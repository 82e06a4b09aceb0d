package mods

// AppStats summarizes the whole mod library.
type AppStats struct {
	TotalMods    int   `json:"totalMods"`
	EnabledMods  int   `json:"enabledMods"`
	DisabledMods int   `json:"disabledMods"`
	TotalSize    int64 `json:"totalSize"`
}

// CategoryStats counts mods per category.
type CategoryStats struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Enabled  int      `json:"enabled"`
	Disabled int      `json:"disabled"`
}

// CharacterStats counts mods per character.
type CharacterStats struct {
	Character Character `json:"character"`
	Count     int       `json:"count"`
	Enabled   int       `json:"enabled"`
	Disabled  int       `json:"disabled"`
}

// Stats scans and aggregates library-wide totals.
func (s *Service) Stats() (*AppStats, error) {
	records, err := s.ScanAll()
	if err != nil {
		return nil, err
	}

	stats := &AppStats{TotalMods: len(records)}
	for _, record := range records {
		if record.Enabled {
			stats.EnabledMods++
		} else {
			stats.DisabledMods++
		}
		stats.TotalSize += record.FileSize
	}
	return stats, nil
}

// StatsByCategory aggregates per-category counts in category order. Every
// category appears, including those with no mods.
func (s *Service) StatsByCategory() ([]CategoryStats, error) {
	records, err := s.ScanAll()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[Category]*CategoryStats, len(AllCategories))
	result := make([]CategoryStats, len(AllCategories))
	for i, category := range AllCategories {
		result[i] = CategoryStats{Category: category}
		byCategory[category] = &result[i]
	}

	for _, record := range records {
		stats, ok := byCategory[record.Category]
		if !ok {
			continue
		}
		stats.Count++
		if record.Enabled {
			stats.Enabled++
		} else {
			stats.Disabled++
		}
	}
	return result, nil
}

// StatsByCharacter aggregates per-character counts in roster order, omitting
// characters with no mods.
func (s *Service) StatsByCharacter() ([]CharacterStats, error) {
	records, err := s.ScanAll()
	if err != nil {
		return nil, err
	}

	byCharacter := make(map[Character]*CharacterStats)
	for _, record := range records {
		if record.Character == nil {
			continue
		}
		stats, ok := byCharacter[*record.Character]
		if !ok {
			stats = &CharacterStats{Character: *record.Character}
			byCharacter[*record.Character] = stats
		}
		stats.Count++
		if record.Enabled {
			stats.Enabled++
		} else {
			stats.Disabled++
		}
	}

	var result []CharacterStats
	for _, character := range AllCharacters {
		if stats, ok := byCharacter[character]; ok {
			result = append(result, *stats)
		}
	}
	return result, nil
}
