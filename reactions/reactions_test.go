package reactions

import (
	"os"
	"sync"
	"testing"
	"time"

	"Muse/queue"

	"github.com/Strum355/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.InitSimpleLogger(&log.Config{Output: os.Stdout})
	viper.Set("reaction.window", "10m")
	os.Exit(m.Run())
}

type fakeMessenger struct {
	mu           sync.Mutex
	adds         []string
	removes      []string
	removeAlls   []string
	userChannels map[string]string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{userChannels: make(map[string]string)}
}

func (m *fakeMessenger) ReactionAdd(channelID, messageID, emoji string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adds = append(m.adds, emoji)
	return nil
}

func (m *fakeMessenger) ReactionRemove(channelID, messageID, emoji, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removes = append(m.removes, emoji)
	return nil
}

func (m *fakeMessenger) ReactionsRemoveAll(channelID, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeAlls = append(m.removeAlls, messageID)
	return nil
}

func (m *fakeMessenger) UserVoiceChannel(guildID, userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userChannels[userID]
}

func (m *fakeMessenger) removedAll() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removeAlls...)
}

type fakeControls struct {
	mu    sync.Mutex
	calls []string
}

func (c *fakeControls) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *fakeControls) Toggle(guildID string) { c.record("toggle") }

func (c *fakeControls) Skip(guildID string) (queue.Track, bool) {
	c.record("skip")
	return queue.Track{}, true
}

func (c *fakeControls) VolumeDelta(guildID string, delta float64) {
	if delta < 0 {
		c.record("volume-down")
		return
	}
	c.record("volume-up")
}

func (c *fakeControls) Stop(guildID string) bool {
	c.record("stop")
	return true
}

func (c *fakeControls) callLog() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type panelHarness struct {
	store    *queue.Store
	msgr     *fakeMessenger
	controls *fakeControls
	system   *System
}

func newPanelHarness() *panelHarness {
	h := &panelHarness{
		store:    queue.NewStore(),
		msgr:     newFakeMessenger(),
		controls: &fakeControls{},
	}
	h.system = NewSystem(h.store, h.controls, h.msgr)
	h.store.Do("g1", func() {
		_ = h.store.Create("g1", &queue.GuildQueue{GuildID: "g1", VoiceChannelID: "vc1"})
	})
	return h
}

func TestBind_AddsControlEmojis(t *testing.T) {
	h := newPanelHarness()

	h.system.Bind("g1", "c1", "m1", time.Minute)

	assert.Equal(t, controlEmojis, h.msgr.adds)
}

func TestBind_Supersedes(t *testing.T) {
	h := newPanelHarness()
	h.msgr.userChannels["u1"] = "vc1"

	h.system.Bind("g1", "c1", "m1", time.Minute)
	h.system.Bind("g1", "c1", "m2", time.Minute)

	h.system.HandleReaction("g1", "c1", "m1", "u1", toggleEmoji)
	assert.Empty(t, h.controls.callLog())

	h.system.HandleReaction("g1", "c1", "m2", "u1", toggleEmoji)
	assert.Equal(t, []string{"toggle"}, h.controls.callLog())
}

func TestHandleReaction_UnknownEmojiRetracted(t *testing.T) {
	h := newPanelHarness()
	h.msgr.userChannels["u1"] = "vc1"
	h.system.Bind("g1", "c1", "m1", time.Minute)

	h.system.HandleReaction("g1", "c1", "m1", "u1", "🎲")

	assert.Empty(t, h.controls.callLog())
	assert.Equal(t, []string{"🎲"}, h.msgr.removes)
}

func TestHandleReaction_OutsideVoiceChannel(t *testing.T) {
	h := newPanelHarness()
	h.msgr.userChannels["u1"] = "vc2"
	h.system.Bind("g1", "c1", "m1", time.Minute)

	h.system.HandleReaction("g1", "c1", "m1", "u1", skipEmoji)

	assert.Empty(t, h.controls.callLog())
	assert.Equal(t, []string{skipEmoji}, h.msgr.removes)
}

func TestHandleReaction_NotInVoiceAtAll(t *testing.T) {
	h := newPanelHarness()
	h.system.Bind("g1", "c1", "m1", time.Minute)

	h.system.HandleReaction("g1", "c1", "m1", "u1", stopEmoji)

	assert.Empty(t, h.controls.callLog())
}

func TestHandleReaction_Controls(t *testing.T) {
	h := newPanelHarness()
	h.msgr.userChannels["u1"] = "vc1"
	h.system.Bind("g1", "c1", "m1", time.Minute)

	h.system.HandleReaction("g1", "c1", "m1", "u1", toggleEmoji)
	h.system.HandleReaction("g1", "c1", "m1", "u1", skipEmoji)
	h.system.HandleReaction("g1", "c1", "m1", "u1", volumeDownEmoji)
	h.system.HandleReaction("g1", "c1", "m1", "u1", volumeUpEmoji)
	h.system.HandleReaction("g1", "c1", "m1", "u1", stopEmoji)

	assert.Equal(t, []string{"toggle", "skip", "volume-down", "volume-up", "stop"}, h.controls.callLog())
	assert.Len(t, h.msgr.removes, 5)
}

func TestHandleReaction_UnboundMessageIgnored(t *testing.T) {
	h := newPanelHarness()
	h.msgr.userChannels["u1"] = "vc1"

	h.system.HandleReaction("g1", "c1", "m1", "u1", toggleEmoji)

	assert.Empty(t, h.controls.callLog())
	assert.Empty(t, h.msgr.removes)
}

func TestRevoke(t *testing.T) {
	h := newPanelHarness()
	h.msgr.userChannels["u1"] = "vc1"
	h.system.Bind("g1", "c1", "m1", time.Minute)

	h.system.Revoke("g1")

	assert.Equal(t, []string{"m1"}, h.msgr.removedAll())

	h.system.HandleReaction("g1", "c1", "m1", "u1", toggleEmoji)
	assert.Empty(t, h.controls.callLog())
}

func TestRevoke_NoPanel(t *testing.T) {
	h := newPanelHarness()

	h.system.Revoke("g1")

	assert.Empty(t, h.msgr.removedAll())
}

func TestBind_ExpiresAfterFallbackWindow(t *testing.T) {
	h := newPanelHarness()
	h.msgr.userChannels["u1"] = "vc1"
	viper.Set("reaction.window", "20ms")
	defer viper.Set("reaction.window", "10m")

	h.system.Bind("g1", "c1", "m1", 0)

	assert.Eventually(t, func() bool {
		all := h.msgr.removedAll()
		return len(all) == 1 && all[0] == "m1"
	}, time.Second, 5*time.Millisecond)

	h.system.HandleReaction("g1", "c1", "m1", "u1", toggleEmoji)
	assert.Empty(t, h.controls.callLog())
}
