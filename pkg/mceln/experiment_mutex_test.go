package mceln

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithExperimentMutexSerializes(t *testing.T) {
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = WithExperimentMutex(1, func() error {
				counter++
				return nil
			})
		}()
	}

	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestExperimentMutexesAreIndependent(t *testing.T) {
	AcquireExperimentMutex(10)
	defer ReleaseExperimentMutex(10)

	done := make(chan struct{})
	go func() {
		_ = WithExperimentMutex(11, func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("holding one experiment's mutex blocked another experiment's")
	}
}
