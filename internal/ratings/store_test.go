package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Put("Charlie", PlayerRating{Overall: 70})
	s.Put("Alpha", PlayerRating{Overall: 71})
	s.Put("Bravo", PlayerRating{Overall: 72})

	assert.Equal(t, []string{"Charlie", "Alpha", "Bravo"}, s.Names())
}

func TestStoreOverwriteKeepsPosition(t *testing.T) {
	s := NewStore()
	s.Put("Charlie", PlayerRating{Overall: 70})
	s.Put("Alpha", PlayerRating{Overall: 71})
	s.Put("Charlie", PlayerRating{Overall: 90})

	assert.Equal(t, []string{"Charlie", "Alpha"}, s.Names())
	r, ok := s.Get("Charlie")
	assert.True(t, ok)
	assert.Equal(t, 90, r.Overall)
	assert.Equal(t, 2, s.Len())
}

func TestStoreGetIsCaseSensitive(t *testing.T) {
	s := NewStore()
	s.Put("Erling Haaland", PlayerRating{Overall: 91})

	_, ok := s.Get("erling haaland")
	assert.False(t, ok)
	_, ok = s.Get("Erling Haaland")
	assert.True(t, ok)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Put("A", PlayerRating{})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Names())
}
