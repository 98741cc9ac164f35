package meter

import "time"

// Clock supplies timestamps for elapsed-time and throughput computations.
// Tests inject a fake; everything else uses the system clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
