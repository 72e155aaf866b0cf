package typing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTracker_ExpiresAfterTTL(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)}
	tr := New(0, c.now)

	tr.Touch("general", "a", "alice")
	require.Equal(t, []string{"alice"}, tr.Active("general"))

	c.advance(1999 * time.Millisecond)
	require.Equal(t, []string{"alice"}, tr.Active("general"))

	c.advance(time.Millisecond)
	require.Empty(t, tr.Active("general"))
	require.Zero(t, tr.Len())
}

func TestTracker_TouchExtendsDeadline(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)}
	tr := New(2*time.Second, c.now)

	tr.Touch("general", "a", "alice")
	c.advance(1500 * time.Millisecond)
	tr.Touch("general", "a", "alice")
	c.advance(1500 * time.Millisecond)

	require.Equal(t, []string{"alice"}, tr.Active("general"))
	require.Equal(t, 1, tr.Len())
}

func TestTracker_KeyedByRoomAndUser(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)}
	tr := New(time.Second, c.now)

	tr.Touch("general", "b", "bob")
	tr.Touch("general", "a", "alice")
	tr.Touch("random", "a", "alice")

	require.Equal(t, []string{"alice", "bob"}, tr.Active("general"))
	require.Equal(t, []string{"alice"}, tr.Active("random"))
	require.Empty(t, tr.Active("other"))
}

func TestTracker_Sweep(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)}
	tr := New(time.Second, c.now)

	tr.Touch("general", "a", "alice")
	tr.Touch("random", "b", "bob")
	c.advance(2 * time.Second)

	require.Equal(t, 2, tr.Sweep())
	require.Zero(t, tr.Sweep())
}
