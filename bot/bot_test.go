package bot

import (
	"testing"

	snek "go-snek"
	"go-snek/game"

	"github.com/stretchr/testify/assert"
)

func snake(nick string, alive bool, body ...snek.Position) game.Snake {
	return game.Snake{Nickname: nick, Alive: alive, Body: body}
}

func TestSteerTowardsApple(t *testing.T) {
	snakes := []game.Snake{
		snake("me", true, snek.Position{X: 4, Y: 4}),
	}

	dir, ok := Steer(snek.Position{X: 7, Y: 4}, snakes, "me")
	assert.True(t, ok)
	assert.Equal(t, snek.Right, dir)

	dir, ok = Steer(snek.Position{X: 4, Y: 1}, snakes, "me")
	assert.True(t, ok)
	assert.Equal(t, snek.Up, dir)
}

func TestSteerAvoidsBodies(t *testing.T) {
	// the apple-ward tile is taken, a safe detour exists
	snakes := []game.Snake{
		snake("me", true, snek.Position{X: 4, Y: 4}),
		snake("foe", true, snek.Position{X: 5, Y: 4}),
	}

	dir, ok := Steer(snek.Position{X: 9, Y: 4}, snakes, "me")
	assert.True(t, ok)
	assert.NotEqual(t, snek.Right, dir)
	next := snek.Position{X: 4, Y: 4}.Add(dir.Delta())
	assert.True(t, next.OnGrid())
	assert.NotEqual(t, snek.Position{X: 5, Y: 4}, next)
}

func TestSteerAvoidsWalls(t *testing.T) {
	// cornered at the origin with the apple outside reach
	snakes := []game.Snake{
		snake("me", true, snek.Position{X: 0, Y: 0}),
	}

	dir, ok := Steer(snek.Position{X: 9, Y: 9}, snakes, "me")
	assert.True(t, ok)
	assert.True(t, dir == snek.Right || dir == snek.Down)
}

func TestSteerBoxedIn(t *testing.T) {
	snakes := []game.Snake{
		snake("me", true, snek.Position{X: 0, Y: 0}),
		snake("foe", true,
			snek.Position{X: 1, Y: 0}, snek.Position{X: 1, Y: 1},
			snek.Position{X: 0, Y: 1}),
	}

	_, ok := Steer(snek.Position{X: 9, Y: 9}, snakes, "me")
	assert.False(t, ok)
}

func TestSteerAbsentOrDead(t *testing.T) {
	snakes := []game.Snake{
		snake("corpse", false, snek.Position{X: 4, Y: 4}),
	}

	_, ok := Steer(snek.Position{X: 1, Y: 1}, snakes, "ghost")
	assert.False(t, ok)

	_, ok = Steer(snek.Position{X: 1, Y: 1}, snakes, "corpse")
	assert.False(t, ok)
}
