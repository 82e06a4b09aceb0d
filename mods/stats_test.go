package mods

import (
	"path/filepath"
	"testing"
)

func TestStats(t *testing.T) {
	svc := newTestService(t)
	writeFileAt(t, filepath.Join(svc.modsDir, "hulk_skin.pak"))
	writeFileAt(t, filepath.Join(svc.modsDir, "venom_skin.pak"))
	writeFileAt(t, filepath.Join(svc.disabledDir, "loud_music.pak"+DisabledMarker))

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalMods != 3 {
		t.Errorf("TotalMods = %d, want 3", stats.TotalMods)
	}
	if stats.EnabledMods != 2 {
		t.Errorf("EnabledMods = %d, want 2", stats.EnabledMods)
	}
	if stats.DisabledMods != 1 {
		t.Errorf("DisabledMods = %d, want 1", stats.DisabledMods)
	}
	if stats.TotalSize <= 0 {
		t.Errorf("TotalSize = %d, want > 0", stats.TotalSize)
	}
}

func TestStatsByCategory(t *testing.T) {
	svc := newTestService(t)
	writeFileAt(t, filepath.Join(svc.modsDir, "hulk_skin.pak"))
	writeFileAt(t, filepath.Join(svc.disabledDir, "loud_music.pak"+DisabledMarker))

	byCategory, err := svc.StatsByCategory()
	if err != nil {
		t.Fatalf("StatsByCategory() error = %v", err)
	}
	if len(byCategory) != len(AllCategories) {
		t.Fatalf("got %d categories, want %d", len(byCategory), len(AllCategories))
	}

	counts := make(map[Category]CategoryStats)
	for _, stats := range byCategory {
		counts[stats.Category] = stats
	}
	if counts[CategorySkins].Enabled != 1 {
		t.Errorf("Skins enabled = %d, want 1", counts[CategorySkins].Enabled)
	}
	if counts[CategoryAudio].Disabled != 1 {
		t.Errorf("Audio disabled = %d, want 1", counts[CategoryAudio].Disabled)
	}
}

func TestStatsByCharacter(t *testing.T) {
	svc := newTestService(t)
	writeFileAt(t, filepath.Join(svc.modsDir, "hulk_colors.pak"))
	writeFileAt(t, filepath.Join(svc.modsDir, "mystery.pak"))

	byCharacter, err := svc.StatsByCharacter()
	if err != nil {
		t.Fatalf("StatsByCharacter() error = %v", err)
	}
	if len(byCharacter) != 1 {
		t.Fatalf("got %d characters, want 1 (no-character mods are omitted)", len(byCharacter))
	}
	if byCharacter[0].Character != Hulk {
		t.Errorf("Character = %q, want %q", byCharacter[0].Character, Hulk)
	}
	if byCharacter[0].Count != 1 {
		t.Errorf("Count = %d, want 1", byCharacter[0].Count)
	}
}
