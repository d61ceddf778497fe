package collections

import (
	"testing"
	"time"

	"github.com/ondrel/curio/internal/models"
)

// testManager returns a loaded manager with a stepping clock so every
// mutation gets a strictly later timestamp.
func testManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	m.Load(nil)
	return m, &now
}

func TestCreateGeneratesIDAndTimestamps(t *testing.T) {
	m, _ := testManager(t)

	c := m.Create(models.Collection{Name: "Frontend"})
	if c.ID == "" {
		t.Fatal("expected generated id")
	}
	if c.CreatedAt.IsZero() || !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Errorf("timestamps: created=%v updated=%v", c.CreatedAt, c.UpdatedAt)
	}
	if c.Lists == nil || len(c.Lists) != 0 {
		t.Errorf("lists = %#v, want empty non-nil", c.Lists)
	}
}

func TestCreateKeepsSuppliedID(t *testing.T) {
	m, _ := testManager(t)
	c := m.Create(models.Collection{ID: "imported-1", Name: "Imported"})
	if c.ID != "imported-1" {
		t.Errorf("id = %q, want imported-1", c.ID)
	}
}

func TestCreateValidationIsAdvisory(t *testing.T) {
	m, _ := testManager(t)

	// An invalid draft still produces a collection; rejection is the
	// caller's job.
	c := m.Create(models.Collection{Name: ""})
	if len(m.All()) != 1 {
		t.Fatal("invalid draft was not created")
	}
	if c.Name != "" {
		t.Errorf("name = %q", c.Name)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	m, _ := testManager(t)
	c := m.Create(models.Collection{Name: "Old", Description: "keep me", Color: "#111111"})

	newName := "New"
	newColor := "#222222"
	m.Update(c.ID, models.CollectionPatch{Name: &newName, Color: &newColor})

	got, _ := m.ByID(c.ID)
	if got.Name != "New" || got.Color != "#222222" {
		t.Errorf("patched fields: %+v", got)
	}
	if got.Description != "keep me" {
		t.Errorf("untouched field changed: %q", got.Description)
	}
	if !got.UpdatedAt.After(c.UpdatedAt) {
		t.Error("UpdatedAt not refreshed")
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	m, _ := testManager(t)
	m.Create(models.Collection{Name: "A"})

	var notified int
	m.Subscribe(func([]models.Collection) { notified++ })

	name := "B"
	m.Update("missing", models.CollectionPatch{Name: &name})
	if notified != 0 {
		t.Error("no-op update notified subscribers")
	}
}

func TestDeleteClearsActiveOnlyWhenActive(t *testing.T) {
	m, _ := testManager(t)
	a := m.Create(models.Collection{Name: "A"})
	b := m.Create(models.Collection{Name: "B"})

	m.SetActive(a.ID)
	m.Delete(b.ID)
	if m.Active() != a.ID {
		t.Error("deleting an inactive collection cleared the selector")
	}

	m.Delete(a.ID)
	if m.Active() != "" {
		t.Error("deleting the active collection left the selector set")
	}
}

func TestAddListIsIdempotent(t *testing.T) {
	m, _ := testManager(t)
	c := m.Create(models.Collection{Name: "A"})

	m.AddList(c.ID, models.ListRef{Repo: "owner/list", Name: "list"})
	first, _ := m.ByID(c.ID)

	m.AddList(c.ID, models.ListRef{Repo: "owner/list", Name: "renamed"})
	second, _ := m.ByID(c.ID)

	if len(second.Lists) != 1 {
		t.Fatalf("lists = %d, want 1", len(second.Lists))
	}
	if second.Lists[0].Name != "list" {
		t.Errorf("duplicate add altered the entry: %+v", second.Lists[0])
	}
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("duplicate add refreshed UpdatedAt")
	}
}

func TestAddListStampsAddedAt(t *testing.T) {
	m, _ := testManager(t)
	c := m.Create(models.Collection{Name: "A"})

	m.AddList(c.ID, models.ListRef{Repo: "owner/list"})
	got, _ := m.ByID(c.ID)
	if got.Lists[0].AddedAt.IsZero() {
		t.Error("AddedAt not stamped")
	}

	fixed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	m.AddList(c.ID, models.ListRef{Repo: "other/list", AddedAt: fixed})
	got, _ = m.ByID(c.ID)
	if !got.Lists[1].AddedAt.Equal(fixed) {
		t.Error("caller-supplied AddedAt overwritten")
	}
}

func TestRemoveListBumpsUpdatedAtEvenWithoutMatch(t *testing.T) {
	m, _ := testManager(t)
	c := m.Create(models.Collection{Name: "A"})
	m.AddList(c.ID, models.ListRef{Repo: "owner/list"})

	before, _ := m.ByID(c.ID)
	m.RemoveList(c.ID, "not/present")
	after, _ := m.ByID(c.ID)

	if len(after.Lists) != 1 {
		t.Fatalf("lists = %d, want 1", len(after.Lists))
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Error("no-match removal did not refresh UpdatedAt")
	}

	m.RemoveList(c.ID, "owner/list")
	final, _ := m.ByID(c.ID)
	if len(final.Lists) != 0 {
		t.Errorf("lists = %d, want 0", len(final.Lists))
	}
}

func TestReorderReplacesSequence(t *testing.T) {
	m, _ := testManager(t)
	a := m.Create(models.Collection{Name: "A"})
	b := m.Create(models.Collection{Name: "B"})

	all := m.All()
	m.Reorder([]models.Collection{all[1], all[0]})

	got := m.All()
	if got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("order = %q, %q", got[0].Name, got[1].Name)
	}
}

func TestNotifySkippedWhileLoading(t *testing.T) {
	m := NewManager()
	var notified int
	m.Subscribe(func([]models.Collection) { notified++ })

	// Mutations before Load must not fan out; otherwise startup state
	// would overwrite the stored snapshot.
	m.Create(models.Collection{Name: "early"})
	if notified != 0 {
		t.Fatal("subscriber ran before initial load")
	}

	m.Load(nil)
	m.Create(models.Collection{Name: "late"})
	if notified != 1 {
		t.Errorf("notified = %d, want 1", notified)
	}
}

func TestSubscriberGetsPrivateCopy(t *testing.T) {
	m, _ := testManager(t)
	var captured []models.Collection
	m.Subscribe(func(snap []models.Collection) { captured = snap })

	c := m.Create(models.Collection{Name: "A"})
	m.AddList(c.ID, models.ListRef{Repo: "o/l"})

	captured[0].Name = "mutated"
	got, _ := m.ByID(c.ID)
	if got.Name != "A" {
		t.Error("subscriber snapshot aliases manager state")
	}
}

func TestErrorSlot(t *testing.T) {
	m, _ := testManager(t)
	if m.LastError() != "" {
		t.Fatal("fresh manager has an error")
	}
	m.SetError("load failed")
	if m.LastError() != "load failed" {
		t.Errorf("error = %q", m.LastError())
	}
	m.ClearError()
	if m.LastError() != "" {
		t.Error("error not cleared")
	}
}
