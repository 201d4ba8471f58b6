package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pentalign/backend/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(72 * time.Hour)
	mock.ExpectExec(`INSERT\s+INTO\s+refresh_tokens\s*\(user_id,\s*token,\s*expires_at\)`).
		WithArgs("u-1", "opaque-value", expires).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), "u-1", "opaque-value", expires); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at"}).
		AddRow("1", "u-1", "opaque-value", expires)
	mock.ExpectQuery(`SELECT\s+id,\s*user_id,\s*token,\s*expires_at\s+FROM\s+refresh_tokens\s+WHERE\s+token`).
		WithArgs("opaque-value").
		WillReturnRows(rows)

	rt, err := repo.Find(context.Background(), "opaque-value")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if rt.UserID != "u-1" || rt.Token != "opaque-value" {
		t.Fatalf("unexpected token: %+v", rt)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id,\s*token,\s*expires_at\s+FROM\s+refresh_tokens`).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "unknown")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+token`).
		WithArgs("opaque-value").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "opaque-value"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDeleteAllForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+user_id`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.DeleteAllForUser(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteAllForUser error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+refresh_tokens`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), "u-1", "t", time.Now())
	if err == nil {
		t.Fatalf("expected wrapped db error, got nil")
	}
}
