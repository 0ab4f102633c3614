package mailbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailboxSetAndConsume(t *testing.T) {
	m := New(0)
	v, dirty := m.Peek()
	assert.Equal(t, 0, v)
	assert.False(t, dirty)

	m.Set(42)
	v, dirty = m.Peek()
	assert.Equal(t, 42, v)
	assert.True(t, dirty)

	v = m.Consume()
	assert.Equal(t, 42, v)
	_, dirty = m.Peek()
	assert.False(t, dirty)
}

func TestMailboxConcurrentAccess(t *testing.T) {
	m := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.Set(n)
		}(i)
	}
	wg.Wait()
	_, dirty := m.Peek()
	assert.True(t, dirty)
}
