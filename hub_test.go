package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sentEvent struct {
	Event   string
	Payload any
}

type recordingPeer struct {
	id     string
	events []sentEvent
	lock   sync.Mutex
}

func newRecordingPeer(id string) *recordingPeer {
	return &recordingPeer{id: id}
}

func (p *recordingPeer) ID() string {
	return p.id
}

func (p *recordingPeer) Send(event string, payload any) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.events = append(p.events, sentEvent{event, payload})
}

func (p *recordingPeer) Events() []sentEvent {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]sentEvent(nil), p.events...)
}

func (p *recordingPeer) EventsOf(event string) []sentEvent {
	var out []sentEvent
	for _, e := range p.Events() {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func TestHubEmit(t *testing.T) {
	hub := NewHub()
	a, b, c := newRecordingPeer("a"), newRecordingPeer("b"), newRecordingPeer("c")
	hub.Attach(a)
	hub.Attach(b)
	hub.Attach(c)
	hub.JoinGroup("a", "1234")
	hub.JoinGroup("b", "1234")
	hub.JoinGroup("b", "1234")

	hub.Emit("1234", "ping", 1)
	assert.Len(t, a.Events(), 1)
	assert.Len(t, b.Events(), 1)
	assert.Empty(t, c.Events())

	hub.EmitExcept("1234", "a", "ping", 2)
	assert.Len(t, a.Events(), 1)
	assert.Equal(t, sentEvent{"ping", 2}, b.Events()[1])
}

func TestHubLeaveAndDetach(t *testing.T) {
	hub := NewHub()
	a, b := newRecordingPeer("a"), newRecordingPeer("b")
	hub.Attach(a)
	hub.Attach(b)
	hub.JoinGroup("a", "1234")
	hub.JoinGroup("b", "1234")
	hub.JoinGroup("b", "5678")

	hub.LeaveGroup("a", "1234")
	hub.LeaveGroup("a", "9999")
	assert.Equal(t, 1, hub.GroupSize("1234"))

	hub.Detach("b")
	assert.Equal(t, 0, hub.GroupSize("1234"))
	assert.Equal(t, 0, hub.GroupSize("5678"))
	hub.Emit("1234", "ping", nil)
	assert.Empty(t, a.Events())
	assert.Empty(t, b.Events())
}
