package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

func newCommittentiWithMock(t *testing.T) (*CommittenteRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &CommittenteRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestGetCommittenteByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newCommittentiWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, ragione_sociale").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateCommittenteReturnsNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newCommittentiWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE committenti").
		WithArgs("missing", "Cati", "GDO", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Committente{ID: "missing", RagioneSociale: "Cati", Categoria: "GDO"})
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListCommittentiScansRows(t *testing.T) {
	repo, mock, done := newCommittentiWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, ragione_sociale").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ragione_sociale", "categoria", "note"}).
			AddRow("c-1", "Cati", "GDO", "").
			AddRow("c-2", "Logitex", "", ""))

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].RagioneSociale != "Cati" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
