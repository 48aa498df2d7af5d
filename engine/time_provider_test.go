package engine

import (
	"testing"
	"time"
)

func TestTimeProviders(t *testing.T) {
	real := NewMonotonicTimeProvider()
	t1 := real.Now()
	time.Sleep(2 * time.Millisecond)
	if d := real.Now().Sub(t1); d < 2*time.Millisecond {
		t.Errorf("monotonic clock advanced %v over a 2ms sleep", d)
	}

	mock := NewMockTimeProvider(epoch)
	mock.Advance(90 * time.Minute)
	if got := mock.Now().Sub(epoch); got != 90*time.Minute {
		t.Errorf("Advance: %v", got)
	}
	jump := epoch.Add(24 * time.Hour)
	mock.SetTime(jump)
	if !mock.Now().Equal(jump) {
		t.Errorf("SetTime: %v", mock.Now())
	}
}
