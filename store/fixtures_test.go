package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

type Fixture struct {
	ctx          context.Context
	db           *sql.DB
	participants *SQLiteParticipantStore
	messages     *SQLiteMessageStore
	t            *testing.T
	tearDown     func()
}

func NewFixture(t *testing.T) *Fixture {
	ctx, cancel := context.WithCancel(context.Background())

	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	// shared-cache in-memory sqlite returns SQLITE_BUSY to a second writer,
	// so funnel the pool through one connection
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(os.DirFS("../migrations"))

	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatal(err)
	}

	if err := goose.Up(db, "."); err != nil {
		t.Fatal(err)
	}

	return &Fixture{
		ctx:          ctx,
		db:           db,
		participants: NewSQLiteParticipantStore(db),
		messages:     NewSQLiteMessageStore(db),
		t:            t,
		tearDown: func() {
			cancel()
			db.Close()
		},
	}
}
