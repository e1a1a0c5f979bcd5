package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	locks := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	const workers = 100

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := locks.Lock("auction:a")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	locks := NewKeyedMutex()

	unlockA := locks.Lock("auction:a")
	defer unlockA()

	// A held lock on one key must not block another key.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("auction:b")
		unlockB()
		close(done)
	}()
	<-done
}
