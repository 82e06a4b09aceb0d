package costumes

import (
	"testing"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Characters() == 0 {
		t.Error("table has no characters")
	}
	if table.Count() == 0 {
		t.Error("table has no costumes")
	}
}

func TestForCharacter(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("known character", func(t *testing.T) {
		costumes := table.ForCharacter("Spider-Man")
		if len(costumes) == 0 {
			t.Fatal("Spider-Man should have at least one costume")
		}
	})

	t.Run("unknown character", func(t *testing.T) {
		costumes := table.ForCharacter("Nobody")
		if len(costumes) != 0 {
			t.Errorf("unknown character returned %d costumes, want 0", len(costumes))
		}
	})
}

func TestGet(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	costume, ok := table.Get("Spider-Man", "classic")
	if !ok {
		t.Fatal("classic Spider-Man costume not found")
	}
	if costume.Name == "" {
		t.Error("costume name is empty")
	}
	if costume.IsDefault == nil || !*costume.IsDefault {
		t.Error("classic costume should be marked default")
	}

	if _, ok := table.Get("Spider-Man", "no-such-costume"); ok {
		t.Error("Get() found a costume that does not exist")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	all := table.All()
	all["Spider-Man"][0].Name = "mutated"

	fresh, _ := table.Get("Spider-Man", all["Spider-Man"][0].ID)
	if fresh.Name == "mutated" {
		t.Error("mutating All() result leaked into the shared table")
	}
}
