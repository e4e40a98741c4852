package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRLock(t *testing.T) {
	t.Run("reentrant on the same goroutine", func(t *testing.T) {
		var l rlock

		l.Lock()
		l.Lock()
		l.Unlock()
		l.Unlock()

		// Fully released: another goroutine can take it.
		done := make(chan struct{})
		go func() {
			l.Lock()
			l.Unlock()
			close(done)
		}()
		<-done
	})

	t.Run("excludes other goroutines", func(t *testing.T) {
		var l rlock
		var wg sync.WaitGroup

		counter := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 1000; j++ {
					l.Lock()
					l.Lock() // nested on purpose
					counter++
					l.Unlock()
					l.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 8000, counter)
	})
}
