package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periebm/batepapo-uol-api/models"
)

func seedMessages(f *Fixture, msgs ...models.Message) []models.Message {
	stored := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		s, err := f.messages.Append(f.ctx, m)
		if err != nil {
			f.t.Fatal(err)
		}
		stored = append(stored, s)
	}
	return stored
}

func TestAppend(t *testing.T) {
	f := NewFixture(t)
	defer f.tearDown()

	stored, err := f.messages.Append(f.ctx, models.Message{
		From: "Alice", To: models.Broadcast, Text: "oi galera",
		Type: models.PublicMessage, Time: "20:04:37",
	})
	require.Nil(t, err)
	require.NotEmpty(t, stored.ID)

	msg, err := f.messages.Get(f.ctx, stored.ID)
	require.Nil(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, stored, *msg)

	other, err := f.messages.Append(f.ctx, models.Message{
		From: "Alice", To: models.Broadcast, Text: "oi de novo",
		Type: models.PublicMessage, Time: "20:04:38",
	})
	require.Nil(t, err)
	assert.NotEqual(t, stored.ID, other.ID)
}

func TestGetUnknownMessage(t *testing.T) {
	f := NewFixture(t)
	defer f.tearDown()

	msg, err := f.messages.Get(f.ctx, "nope")
	require.Nil(t, err)
	assert.Nil(t, msg)
}

func TestVisibleTo(t *testing.T) {

	t.Run("filters by broadcast, recipient and sender", func(t *testing.T) {
		f := NewFixture(t)
		defer f.tearDown()

		seedMessages(f,
			models.Message{From: "Alice", To: models.Broadcast, Text: "hi all", Type: models.PublicMessage, Time: "10:00:00"},
			models.Message{From: "Alice", To: "Bob", Text: "psst", Type: models.PrivateMessage, Time: "10:00:01"},
			models.Message{From: "Carol", To: "Alice", Text: "hey", Type: models.PrivateMessage, Time: "10:00:02"},
			models.Message{From: "Carol", To: "Bob", Text: "secret", Type: models.PrivateMessage, Time: "10:00:03"},
		)

		msgs, err := f.messages.VisibleTo(f.ctx, "Alice", 0)
		require.Nil(t, err)
		require.Len(t, msgs, 3)
		// most recent first, and never a third party's private message
		assert.Equal(t, "hey", msgs[0].Text)
		assert.Equal(t, "psst", msgs[1].Text)
		assert.Equal(t, "hi all", msgs[2].Text)
	})

	t.Run("positive limit keeps the most recent entries", func(t *testing.T) {
		f := NewFixture(t)
		defer f.tearDown()

		for i := 0; i < 10; i++ {
			seedMessages(f, models.Message{
				From: "Alice", To: models.Broadcast, Text: fmt.Sprintf("msg %d", i),
				Type: models.PublicMessage, Time: "10:00:00",
			})
		}

		msgs, err := f.messages.VisibleTo(f.ctx, "Alice", 3)
		require.Nil(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "msg 9", msgs[0].Text)
		assert.Equal(t, "msg 8", msgs[1].Text)
		assert.Equal(t, "msg 7", msgs[2].Text)
	})
}

func TestUpdateMessage(t *testing.T) {

	t.Run("owner updates content only", func(t *testing.T) {
		f := NewFixture(t)
		defer f.tearDown()

		stored := seedMessages(f, models.Message{
			From: "Alice", To: models.Broadcast, Text: "tpyo",
			Type: models.PublicMessage, Time: "10:00:00",
		})[0]

		updated, err := f.messages.Update(f.ctx, stored.ID, "Alice", "Bob", "typo", models.PrivateMessage)
		require.Nil(t, err)
		assert.True(t, updated)

		msg, err := f.messages.Get(f.ctx, stored.ID)
		require.Nil(t, err)
		assert.Equal(t, "Bob", msg.To)
		assert.Equal(t, "typo", msg.Text)
		assert.Equal(t, models.PrivateMessage, msg.Type)
		assert.Equal(t, "Alice", msg.From)
		assert.Equal(t, stored.ID, msg.ID)
	})

	t.Run("non-owner changes nothing", func(t *testing.T) {
		f := NewFixture(t)
		defer f.tearDown()

		stored := seedMessages(f, models.Message{
			From: "Alice", To: models.Broadcast, Text: "mine",
			Type: models.PublicMessage, Time: "10:00:00",
		})[0]

		updated, err := f.messages.Update(f.ctx, stored.ID, "Bob", "Bob", "hijacked", models.PublicMessage)
		require.Nil(t, err)
		assert.False(t, updated)

		msg, err := f.messages.Get(f.ctx, stored.ID)
		require.Nil(t, err)
		assert.Equal(t, "mine", msg.Text)
	})
}

func TestRemoveMessage(t *testing.T) {

	t.Run("owner removes", func(t *testing.T) {
		f := NewFixture(t)
		defer f.tearDown()

		stored := seedMessages(f, models.Message{
			From: "Alice", To: models.Broadcast, Text: "bye",
			Type: models.PublicMessage, Time: "10:00:00",
		})[0]

		removed, err := f.messages.Remove(f.ctx, stored.ID, "Alice")
		require.Nil(t, err)
		assert.True(t, removed)

		msg, err := f.messages.Get(f.ctx, stored.ID)
		require.Nil(t, err)
		assert.Nil(t, msg)
	})

	t.Run("non-owner removes nothing", func(t *testing.T) {
		f := NewFixture(t)
		defer f.tearDown()

		stored := seedMessages(f, models.Message{
			From: "Alice", To: models.Broadcast, Text: "stay",
			Type: models.PublicMessage, Time: "10:00:00",
		})[0]

		removed, err := f.messages.Remove(f.ctx, stored.ID, "Bob")
		require.Nil(t, err)
		assert.False(t, removed)

		msg, err := f.messages.Get(f.ctx, stored.ID)
		require.Nil(t, err)
		require.NotNil(t, msg)
	})
}

func TestClearMessages(t *testing.T) {
	f := NewFixture(t)
	defer f.tearDown()

	seedMessages(f,
		models.Message{From: "Alice", To: models.Broadcast, Text: "one", Type: models.PublicMessage, Time: "10:00:00"},
		models.Message{From: "Bob", To: models.Broadcast, Text: "two", Type: models.PublicMessage, Time: "10:00:01"},
	)

	require.Nil(t, f.messages.Clear(f.ctx))

	msgs, err := f.messages.VisibleTo(f.ctx, "Alice", 0)
	require.Nil(t, err)
	assert.Empty(t, msgs)
}
