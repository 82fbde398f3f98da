package conf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := load(strings.NewReader(`
[proto]
port = 1234
timeout = 5000

[game]
speed = 250

[bots]
count = 2
room = 3
`))
	require.NoError(t, err)

	assert.Equal(t, uint16(1234), c.TCPPort)
	assert.Equal(t, 5*time.Second, c.ConnTimeout)
	assert.Equal(t, 250*time.Millisecond, c.GameSpeed)
	assert.Equal(t, uint(2), c.Bots)
	assert.Equal(t, uint(3), c.BotRoom)

	// unmentioned keys keep their defaults
	assert.Equal(t, defaultConfig.TCPAddr, c.TCPAddr)
	assert.Equal(t, defaultConfig.PingInterval, c.PingInterval)
	assert.Equal(t, defaultConfig.PlayerTimeout, c.PlayerTimeout)
	assert.Equal(t, defaultConfig.WebSocket, c.WebSocket)
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := load(strings.NewReader(`port = "not a table"`))
	assert.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	c := Default()
	c.TCPPort = 4242
	c.GameSpeed = 100 * time.Millisecond

	var buf bytes.Buffer
	require.NoError(t, c.Dump(&buf))

	back, err := load(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(4242), back.TCPPort)
	assert.Equal(t, 100*time.Millisecond, back.GameSpeed)
	assert.Equal(t, c.ConnTimeout, back.ConnTimeout)
}
