package storage

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/models"
)

type fixedClock string

func (c fixedClock) Today() string { return string(c) }

func newTestRegistry(t *testing.T) *HabitRegistry {
	t.Helper()
	return NewHabitRegistry(newTestKV(t), fixedClock("2025-03-15"))
}

func testHabit(id, name string) models.Habit {
	return models.Habit{
		ID:          id,
		Name:        name,
		Icon:        "🎯",
		Color:       "#4CAF50",
		CreatedDate: "2025-03-01",
		IsActive:    true,
	}
}

func TestHabitRegistry_AddAndList(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Add(testHabit("h2", "Read")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("Expected 2 habits, got %d", len(habits))
	}
	if habits[0].Name != "Run" || habits[1].Name != "Read" {
		t.Errorf("Expected insertion order preserved, got %v", habits)
	}
}

func TestHabitRegistry_AddRejectsInvalidHabit(t *testing.T) {
	registry := newTestRegistry(t)

	habit := testHabit("h1", "Run")
	habit.Color = "green"

	err := registry.Add(habit)
	if err == nil {
		t.Fatal("Expected validation error, got none")
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Expected ErrValidation, got: %v", err)
	}
}

func TestHabitRegistry_NameTakenIsCaseInsensitive(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Morning Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := registry.Add(testHabit("h2", "morning run"))
	if err == nil {
		t.Fatal("Expected name collision error, got none")
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Expected ErrValidation, got: %v", err)
	}
}

func TestHabitRegistry_NameStaysTakenAfterDeactivation(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Deactivate("h1"); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	if err := registry.Add(testHabit("h2", "Run")); err == nil {
		t.Error("Expected deactivated habit's name to stay taken")
	}
}

func TestHabitRegistry_FirstAddBecomesActive(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Add(testHabit("h2", "Read")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	activeID, err := registry.ActiveHabitID()
	if err != nil {
		t.Fatalf("ActiveHabitID failed: %v", err)
	}
	if activeID != "h1" {
		t.Errorf("Expected pointer to stay on first habit, got %q", activeID)
	}
}

func TestHabitRegistry_UpdateMissingHabit(t *testing.T) {
	registry := newTestRegistry(t)

	err := registry.Update(testHabit("ghost", "Ghost"))
	if err == nil {
		t.Fatal("Expected not-found error, got none")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestHabitRegistry_UpdatePreservesPosition(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Add(testHabit("h2", "Read")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	renamed := testHabit("h1", "Sprint")
	if err := registry.Update(renamed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if habits[0].Name != "Sprint" {
		t.Errorf("Expected updated habit to keep its slot, got %v", habits)
	}
}

func TestHabitRegistry_DeactivateMovesPointer(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Add(testHabit("h2", "Read")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := registry.Deactivate("h1"); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	activeID, err := registry.ActiveHabitID()
	if err != nil {
		t.Fatalf("ActiveHabitID failed: %v", err)
	}
	if activeID != "h2" {
		t.Errorf("Expected pointer to move to h2, got %q", activeID)
	}
}

func TestHabitRegistry_DeactivateLastClearsPointer(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Deactivate("h1"); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	activeID, err := registry.ActiveHabitID()
	if err != nil {
		t.Fatalf("ActiveHabitID failed: %v", err)
	}
	if activeID != "" {
		t.Errorf("Expected cleared pointer, got %q", activeID)
	}

	_, ok, err := registry.ActiveHabit()
	if err != nil {
		t.Fatalf("ActiveHabit failed: %v", err)
	}
	if ok {
		t.Error("Expected no active habit")
	}
}

func TestHabitRegistry_ActiveHabitHealsStalePointer(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Add(testHabit("h2", "Read")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.SetActiveHabitID("ghost"); err != nil {
		t.Fatalf("SetActiveHabitID failed: %v", err)
	}

	habit, ok, err := registry.ActiveHabit()
	if err != nil {
		t.Fatalf("ActiveHabit failed: %v", err)
	}
	if !ok || habit.ID != "h1" {
		t.Fatalf("Expected fallback to h1, got %v (ok=%v)", habit, ok)
	}

	activeID, err := registry.ActiveHabitID()
	if err != nil {
		t.Fatalf("ActiveHabitID failed: %v", err)
	}
	if activeID != "h1" {
		t.Errorf("Expected corrected pointer to be persisted, got %q", activeID)
	}
}

func TestHabitRegistry_MalformedListRecoversAsEmpty(t *testing.T) {
	store := newTestKV(t)
	registry := NewHabitRegistry(store, fixedClock("2025-03-15"))

	if err := store.Set("habits_list", "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("Expected corrupt list to be recovered, got: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("Expected empty list, got %v", habits)
	}
}

func TestHabitRegistry_GenerateUniqueName(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := registry.Add(testHabit("h2", "Run (1)")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	name, err := registry.GenerateUniqueName("Run")
	if err != nil {
		t.Fatalf("GenerateUniqueName failed: %v", err)
	}
	if name != "Run (2)" {
		t.Errorf("Expected %q, got %q", "Run (2)", name)
	}
}

func TestHabitRegistry_EnsureDefaultsSeedsOnce(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("Expected one seeded habit, got %d", len(habits))
	}
	if habits[0].CreatedDate != "2025-03-15" {
		t.Errorf("Expected seed dated today, got %s", habits[0].CreatedDate)
	}

	activeID, err := registry.ActiveHabitID()
	if err != nil {
		t.Fatalf("ActiveHabitID failed: %v", err)
	}
	if activeID != habits[0].ID {
		t.Errorf("Expected seeded habit to be active, got %q", activeID)
	}

	// Running again must not duplicate the seed.
	if err := registry.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}
	habits, err = registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("Expected no reseed, got %d habits", len(habits))
	}
}

func TestHabitRegistry_NoReseedAfterClearAll(t *testing.T) {
	registry := newTestRegistry(t)

	if err := registry.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}
	if err := registry.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if err := registry.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("Expected first-run flag to block reseeding, got %v", habits)
	}
}

func TestHabitRegistry_ExportImportRoundTrip(t *testing.T) {
	source := newTestRegistry(t)
	if err := source.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := source.Add(testHabit("h2", "Read")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	data, err := source.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	target := newTestRegistry(t)
	if err := target.Import(data, sequentialIDs(t)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	habits, err := target.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 2 {
		t.Errorf("Expected 2 imported habits, got %d", len(habits))
	}
}

func TestHabitRegistry_ImportSkipsCollidingNames(t *testing.T) {
	registry := newTestRegistry(t)
	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	data := `[
		{"id":"x1","name":"run","icon":"🏃","color":"#000000","createdDate":"2025-01-01","isActive":true},
		{"id":"x2","name":"Read","icon":"📚","color":"#000000","createdDate":"2025-01-01","isActive":true}
	]`
	if err := registry.Import(data, sequentialIDs(t)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("Expected the colliding name to be skipped, got %v", habits)
	}
	if habits[1].Name != "Read" {
		t.Errorf("Expected Read to be imported, got %v", habits[1])
	}
}

func TestHabitRegistry_ImportRemapsCollidingIDs(t *testing.T) {
	registry := newTestRegistry(t)
	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	data := `[{"id":"h1","name":"Read","icon":"📚","color":"#000000","createdDate":"2025-01-01","isActive":true}]`
	if err := registry.Import(data, sequentialIDs(t)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("Expected 2 habits, got %d", len(habits))
	}
	if habits[1].ID == "h1" {
		t.Error("Expected imported habit to get a fresh id")
	}
}

func TestHabitRegistry_ImportDuplicateNamesWithinBatch(t *testing.T) {
	registry := newTestRegistry(t)

	data := `[
		{"id":"x1","name":"Run","icon":"🏃","color":"#000000","createdDate":"2025-01-01","isActive":true},
		{"id":"x2","name":"run","icon":"🏃","color":"#000000","createdDate":"2025-01-01","isActive":true}
	]`
	if err := registry.Import(data, sequentialIDs(t)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("Expected only the first of two same-named imports to land, got %v", habits)
	}
}

func TestHabitRegistry_ImportMalformedJSONMutatesNothing(t *testing.T) {
	registry := newTestRegistry(t)
	if err := registry.Add(testHabit("h1", "Run")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := registry.Import("{not json", sequentialIDs(t))
	if err == nil {
		t.Fatal("Expected malformed import to fail")
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Expected ErrValidation, got: %v", err)
	}

	habits, err := registry.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("Expected registry untouched, got %v", habits)
	}
}

func sequentialIDs(t *testing.T) func() string {
	t.Helper()
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("generated-%d", n)
	}
}
