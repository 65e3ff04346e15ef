package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	ps := NewPubSub[int]()
	a := ps.Subscribe("laps")
	b := ps.Subscribe("laps")

	done := make(chan int, 2)
	for _, ch := range []<-chan int{a, b} {
		go func(ch <-chan int) { done <- <-ch }(ch)
	}

	ps.Publish("laps", 42)
	assert.Equal(t, 42, <-done)
	assert.Equal(t, 42, <-done)
}

func TestPublishIgnoresOtherTopics(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe("laps")

	// no subscriber on this topic; must not block
	ps.Publish("riders", "ignored")

	select {
	case v := <-ch:
		t.Fatalf("unexpected message %q", v)
	default:
	}
}
