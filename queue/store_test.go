package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_CreateGetRemove(t *testing.T) {
	s := NewStore()

	assert.Nil(t, s.Get("g1"))

	q := &GuildQueue{GuildID: "g1"}
	assert.NoError(t, s.Create("g1", q))
	assert.Same(t, q, s.Get("g1"))

	s.Remove("g1")
	assert.Nil(t, s.Get("g1"))
}

func TestStore_CreateDuplicate(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.Create("g1", &GuildQueue{GuildID: "g1"}))

	err := s.Create("g1", &GuildQueue{GuildID: "g1"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestStore_Guilds(t *testing.T) {
	s := NewStore()

	assert.NoError(t, s.Create("g1", &GuildQueue{GuildID: "g1"}))
	assert.NoError(t, s.Create("g2", &GuildQueue{GuildID: "g2"}))

	guilds := s.Guilds()
	assert.ElementsMatch(t, []string{"g1", "g2"}, guilds)
}

func TestStore_DoSerializesSameGuild(t *testing.T) {
	s := NewStore()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do("g1", func() {
				counter++
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestStore_DoDifferentGuildsDoNotBlock(t *testing.T) {
	s := NewStore()

	release := make(chan struct{})
	holding := make(chan struct{})
	go s.Do("g1", func() {
		close(holding)
		<-release
	})
	<-holding

	other := make(chan struct{})
	go s.Do("g2", func() {
		close(other)
	})

	select {
	case <-other:
	case <-time.After(time.Second):
		t.Fatal("Do for a different guild blocked")
	}
	close(release)
}

func TestStore_DoReleasesLock(t *testing.T) {
	s := NewStore()

	s.Do("g1", func() {})
	s.Do("g1", func() {})

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.locks)
}
