package conversation

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_SerializesSameConversation(t *testing.T) {
	m := NewManager()

	var active, maxActive int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.WithLock("conv-1", func() error {
				n := atomic.AddInt32(&active, 1)
				for {
					cur := atomic.LoadInt32(&maxActive)
					if n <= cur || atomic.CompareAndSwapInt32(&maxActive, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
}

func TestManager_ParallelAcrossConversations(t *testing.T) {
	m := NewManager()

	inA := make(chan struct{})
	release := make(chan struct{})
	go m.WithLock("a", func() error {
		close(inA)
		<-release
		return nil
	})
	<-inA

	done := make(chan struct{})
	go func() {
		m.WithLock("b", func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("conversation b blocked behind conversation a")
	}
	close(release)
}

func TestManager_ReturnsFnError(t *testing.T) {
	m := NewManager()
	want := errors.New("boom")
	assert.ErrorIs(t, m.WithLock("c", func() error { return want }), want)
}

func TestManager_Cleanup(t *testing.T) {
	m := NewManager()
	m.WithLock("old", func() error { return nil })

	assert.Equal(t, 0, m.Cleanup(time.Hour))
	assert.Equal(t, 1, m.Len())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, m.Cleanup(time.Millisecond))
	assert.Equal(t, 0, m.Len())
}

func TestManager_CleanupKeepsBusyLocks(t *testing.T) {
	m := NewManager()

	entered := make(chan struct{})
	release := make(chan struct{})
	go m.WithLock("busy", func() error {
		close(entered)
		<-release
		return nil
	})
	<-entered

	assert.Equal(t, 0, m.Cleanup(0))
	assert.Equal(t, 1, m.Len())
	close(release)
}
