package events

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrAlreadySubscribed is returned when a message type already has its consumer.
var ErrAlreadySubscribed = errors.New("message type already has a consumer")

// Bus routes typed messages to exactly one consumer per type. Delivery happens
// through post, normally Loop.Post.
type Bus struct {
	mu       sync.RWMutex
	post     func(func()) bool
	handlers map[reflect.Type]func(any)
}

// NewBus creates a bus delivering through post. A nil post delivers inline.
func NewBus(post func(func()) bool) *Bus {
	if post == nil {
		post = func(fn func()) bool { fn(); return true }
	}
	return &Bus{post: post, handlers: make(map[reflect.Type]func(any))}
}

// Subscribe registers fn as the consumer of messages of type T.
func Subscribe[T any](b *Bus, fn func(T)) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.handlers[t]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadySubscribed, t)
	}
	b.handlers[t] = func(msg any) { fn(msg.(T)) }
	return nil
}

// Unsubscribe drops the consumer for type T.
func Unsubscribe[T any](b *Bus) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	delete(b.handlers, t)
	b.mu.Unlock()
}

// Publish hands msg to its consumer. It reports false if nobody consumes the type
// or the loop no longer accepts work.
func (b *Bus) Publish(msg any) bool {
	b.mu.RLock()
	h, ok := b.handlers[reflect.TypeOf(msg)]
	b.mu.RUnlock()
	if !ok {
		return false
	}
	return b.post(func() { h(msg) })
}
