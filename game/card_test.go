package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestDeckComposition(t *testing.T) {
	t.Run("chance has 16 cards with one keep card", func(t *testing.T) {
		d := NewChanceDeck()
		require.Equal(t, 16, d.Len())
		keeps := 0
		for i := 0; i < 16; i++ {
			if d.Draw().Kind == EffectJailFree {
				keeps++
			}
		}
		require.Equal(t, 1, keeps)
	})

	t.Run("community chest has 16 cards with one keep card", func(t *testing.T) {
		d := NewCommunityChestDeck()
		require.Equal(t, 16, d.Len())
		keeps := 0
		for i := 0; i < 16; i++ {
			if d.Draw().Kind == EffectJailFree {
				keeps++
			}
		}
		require.Equal(t, 1, keeps)
	})
}

func TestDeckRotation(t *testing.T) {
	t.Run("drawn card rotates to the bottom", func(t *testing.T) {
		d := NewChanceDeck()
		first := d.Peek()
		require.NotEqual(t, EffectJailFree, first.Kind)
		drawn := d.Draw()
		require.Equal(t, first.ID, drawn.ID)
		require.Equal(t, 16, d.Len())

		// Drawing through the whole deck must come back to the same card.
		for i := 0; i < 15; i++ {
			d.Draw()
		}
		require.Equal(t, first.ID, d.Peek().ID)
	})

	t.Run("keep card leaves the deck until returned", func(t *testing.T) {
		d := NewChanceDeck()
		var keep Card
		for {
			c := d.Draw()
			if c.Kind == EffectJailFree {
				keep = c
				break
			}
		}
		require.Equal(t, 15, d.Len())
		for i := 0; i < 30; i++ {
			require.NotEqual(t, EffectJailFree, d.Draw().Kind)
		}
		d.Return(keep)
		require.Equal(t, 16, d.Len())
	})
}

func TestDeckShuffle(t *testing.T) {
	t.Run("same seed gives the same order", func(t *testing.T) {
		a := NewChanceDeck()
		b := NewChanceDeck()
		a.Shuffle(rand.New(rand.NewSource(42)))
		b.Shuffle(rand.New(rand.NewSource(42)))
		for i := 0; i < 16; i++ {
			require.Equal(t, a.Draw().ID, b.Draw().ID)
		}
	})

	t.Run("shuffle preserves the card set", func(t *testing.T) {
		d := NewChanceDeck()
		d.Shuffle(rand.New(rand.NewSource(7)))
		seen := make(map[int]bool)
		for i := 0; i < 16; i++ {
			seen[d.Draw().ID] = true
		}
		require.Len(t, seen, 16)
	})
}
