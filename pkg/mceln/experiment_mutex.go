package mceln

import (
	"sync"

	"github.com/apex/log"
)

var mapMutex sync.Mutex
var mutexes = make(map[int]*sync.Mutex)

// The web layer serializes mutations per experiment so two requests can't,
// for example, timestamp and destroy the same record at once. mapMutex only
// guards the map; it is released before blocking on an experiment's mutex so
// contention on one experiment doesn't hold up the rest.

func AcquireExperimentMutex(experimentID int) {
	mapMutex.Lock()
	experimentMutex, ok := mutexes[experimentID]
	if !ok {
		experimentMutex = &sync.Mutex{}
		mutexes[experimentID] = experimentMutex
	}
	mapMutex.Unlock()

	experimentMutex.Lock()
}

func ReleaseExperimentMutex(experimentID int) {
	mapMutex.Lock()
	m, ok := mutexes[experimentID]
	mapMutex.Unlock()

	if !ok {
		log.Errorf("ReleaseExperimentMutex called on experiment (%d) with no mutex", experimentID)
		return
	}

	m.Unlock()
}

func WithExperimentMutex(experimentID int, f func() error) error {
	AcquireExperimentMutex(experimentID)
	defer ReleaseExperimentMutex(experimentID)
	return f()
}
