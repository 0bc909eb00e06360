package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/anikeenko/psysync/internal/logger"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestKV(t *testing.T) (*sqliteKV, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	kv := &sqliteKV{
		db:     &DB{DB: db, logger: l},
		logger: l,
		now:    func() time.Time { return testNow },
	}
	return kv, mock, db
}

func TestKV_Get_Success(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM kv WHERE key = ?").
		WithArgs("sync:queue").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	value, err := kv.Get(context.Background(), "sync:queue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(value) != `[]` {
		t.Fatalf("unexpected value: %s", value)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestKV_Get_MissingKey(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM kv WHERE key = ?").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := kv.Get(context.Background(), "missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got: %v", err)
	}
}

func TestKV_Set_WithoutTTL(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO kv").
		WithArgs("sync:queue", []byte(`[]`), nil, testNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := kv.Set(context.Background(), "sync:queue", []byte(`[]`), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestKV_Set_WithTTLRecordsExpiry(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	ttl := 7 * 24 * time.Hour

	mock.ExpectExec("INSERT INTO kv").
		WithArgs("sync:item:abc", []byte(`{}`), testNow.Add(ttl), testNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := kv.Set(context.Background(), "sync:item:abc", []byte(`{}`), ttl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestKV_Delete(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM kv WHERE key = ?").
		WithArgs("sync:item:abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := kv.Delete(context.Background(), "sync:item:abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKV_ScanPrefix(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("sync:item:a", []byte(`{"id":"a"}`)).
		AddRow("sync:item:b", []byte(`{"id":"b"}`))

	mock.ExpectQuery("SELECT key, value FROM kv WHERE key LIKE").
		WithArgs("sync:item:%").
		WillReturnRows(rows)

	result, err := kv.ScanPrefix(context.Background(), "sync:item:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result))
	}
	if string(result["sync:item:a"]) != `{"id":"a"}` {
		t.Fatalf("unexpected value for sync:item:a: %s", result["sync:item:a"])
	}
}

func TestKV_ScanPrefix_EscapesLikeMetacharacters(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value FROM kv WHERE key LIKE").
		WithArgs(`odd\_prefix\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))

	if _, err := kv.ScanPrefix(context.Background(), "odd_prefix%"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestKV_Sweep_RemovesExpiredOnly(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <=").
		WithArgs(testNow).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := kv.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
}

func TestKV_Sweep_ExecError(t *testing.T) {
	kv, mock, db := newTestKV(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <=").
		WillReturnError(errors.New("database is locked"))

	_, err := kv.Sweep(context.Background())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got: %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "sync:item:", want: "sync:item:"},
		{in: "a%b", want: `a\%b`},
		{in: "a_b", want: `a\_b`},
		{in: `a\b`, want: `a\\b`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
