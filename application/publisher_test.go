package application

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPublisher_PendingTickAtCancel(t *testing.T) {
	session := &MockSessionClient{}

	var count atomic.Int64
	inFlight := make(chan struct{})
	release := make(chan struct{})
	session.On("Publish", "hello", []byte("world"), byte(0), false).
		Run(func(args mock.Arguments) {
			if count.Add(1) == 1 {
				inFlight <- struct{}{}
				<-release
			}
		}).
		Return(nil)

	p := &publisher{
		session:  session,
		topic:    "hello",
		payload:  []byte("world"),
		interval: time.Millisecond,
		log:      zerolog.Nop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.run(ctx)
	}()

	select {
	case <-inFlight:
	case <-time.After(time.Second):
		t.Fatal("no publish within deadline")
	}

	// With the first publish held in flight, let further ticks queue up,
	// then cancel before releasing it. The pending tick must not produce
	// another publish.
	time.Sleep(5 * time.Millisecond)
	cancel()
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}

	assert.EqualValues(t, 1, count.Load())
}
