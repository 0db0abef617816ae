package contacts

import (
	"context"
	"testing"
)

func TestFileRepositorySeedsDefaults(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}

	list, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d contacts, want 3 defaults", len(list))
	}
	if list[0].Name != "Syntra Bizz" {
		t.Errorf("first contact = %q", list[0].Name)
	}
}

func TestFileRepositoryAddAndDelete(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}
	ctx := context.Background()

	added, err := repo.Add(ctx, "Test BV", "test@test.be")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if added.ID <= 3 {
		t.Errorf("new id = %d, want above seeded ids", added.ID)
	}

	list, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("got %d contacts after add, want 4", len(list))
	}

	if err := repo.Delete(ctx, added.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	list, err = repo.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	for _, c := range list {
		if c.ID == added.ID {
			t.Errorf("contact %d still present after delete", added.ID)
		}
	}
}

func TestFileRepositoryIDsMonotonic(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}
	ctx := context.Background()

	first, err := repo.Add(ctx, "A", "a@x.be")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	second, err := repo.Add(ctx, "B", "b@x.be")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("ids not increasing: %d then %d", first.ID, second.ID)
	}
}

func TestFileRepositoryPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}
	if _, err := repo.Add(ctx, "Blijvend", "blijvend@x.be"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reopened, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("NewFileRepository() reopen error = %v", err)
	}
	list, err := reopened.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(list) != 4 {
		t.Errorf("got %d contacts after reopen, want 4", len(list))
	}
}

func TestFileRepositoryDeleteUnknownIDIsNoop(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}
	ctx := context.Background()

	if err := repo.Delete(ctx, 99999); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	list, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(list) != 3 {
		t.Errorf("got %d contacts, want untouched 3", len(list))
	}
}
