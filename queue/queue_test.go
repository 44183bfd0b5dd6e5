package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func track(id string) Track {
	return Track{ID: id, Title: "title " + id}
}

func TestHead_Empty(t *testing.T) {
	q := &GuildQueue{}

	_, ok := q.Head()

	assert.False(t, ok)
}

func TestHead(t *testing.T) {
	q := &GuildQueue{Songs: []Track{track("a"), track("b")}}

	head, ok := q.Head()

	assert.True(t, ok)
	assert.Equal(t, "a", head.ID)
}

func TestRemoveAt(t *testing.T) {
	q := &GuildQueue{Songs: []Track{track("a"), track("b"), track("c")}}

	removed, ok := q.RemoveAt(1)

	assert.True(t, ok)
	assert.Equal(t, "b", removed.ID)
	assert.Len(t, q.Songs, 2)
	assert.Equal(t, "a", q.Songs[0].ID)
	assert.Equal(t, "c", q.Songs[1].ID)
}

func TestRemoveAt_HeadProtected(t *testing.T) {
	q := &GuildQueue{Songs: []Track{track("a"), track("b")}}

	_, ok := q.RemoveAt(0)

	assert.False(t, ok)
	assert.Len(t, q.Songs, 2)
}

func TestRemoveAt_OutOfRange(t *testing.T) {
	q := &GuildQueue{Songs: []Track{track("a"), track("b")}}

	_, ok := q.RemoveAt(2)
	assert.False(t, ok)

	_, ok = q.RemoveAt(-1)
	assert.False(t, ok)

	assert.Len(t, q.Songs, 2)
}
