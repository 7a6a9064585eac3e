package room

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/periebm/batepapo-uol-api/store"
)

type Fixture struct {
	ctx          context.Context
	room         *Room
	participants store.ParticipantStore
	messages     store.MessageStore
	t            *testing.T
	tearDown     func()
}

func NewFixture(t *testing.T) *Fixture {
	ctx, cancel := context.WithCancel(context.Background())

	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(os.DirFS("../migrations"))

	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatal(err)
	}

	if err := goose.Up(db, "."); err != nil {
		t.Fatal(err)
	}

	participants := store.NewSQLiteParticipantStore(db)
	messages := store.NewSQLiteMessageStore(db)

	return &Fixture{
		ctx:          ctx,
		room:         New(participants, messages),
		participants: participants,
		messages:     messages,
		t:            t,
		tearDown: func() {
			cancel()
			db.Close()
		},
	}
}

// setClock pins the room's clock so tests can control last-seen timestamps
// and eviction cutoffs.
func (f *Fixture) setClock(at time.Time) {
	f.room.now = func() time.Time { return at }
}
