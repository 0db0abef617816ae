package contacts

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresRepositoryAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)
	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(int64(1), "Syntra Bizz", "admin@syntrabizz.be").
		AddRow(int64(2), "Cevora", "admin@cevora.be")

	mock.ExpectQuery("select id, name, email from contacts").WillReturnRows(rows)

	list, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d contacts, want 2", len(list))
	}
	if list[1].Email != "admin@cevora.be" {
		t.Errorf("second contact email = %q", list[1].Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresRepositoryAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)
	mock.ExpectQuery("insert into contacts").
		WithArgs("Test BV", "test@test.be").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	contact, err := repo.Add(context.Background(), "Test BV", "test@test.be")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if contact.ID != 7 || contact.Name != "Test BV" {
		t.Errorf("contact = %+v", contact)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)
	mock.ExpectExec("delete from contacts").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
