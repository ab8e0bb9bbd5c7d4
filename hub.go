package main

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Peer is one connected client as seen by the Hub.
type Peer interface {
	ID() string
	Send(event string, payload any)
}

// Broadcaster is the group addressing the session layer relies on.
type Broadcaster interface {
	JoinGroup(connID, group string)
	LeaveGroup(connID, group string)
	Emit(group, event string, payload any)
	EmitExcept(group, exceptID, event string, payload any)
}

// Hub tracks attached peers and the named broadcast groups they belong to.
type Hub struct {
	peers  map[string]Peer
	groups map[string]map[string]struct{}
	lock   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{peers: make(map[string]Peer), groups: make(map[string]map[string]struct{})}
}

func (h *Hub) Attach(peer Peer) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.peers[peer.ID()] = peer
}

// Detach forgets the peer and drops it from every group.
func (h *Hub) Detach(connID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.peers, connID)
	for name, group := range h.groups {
		delete(group, connID)
		if len(group) == 0 {
			delete(h.groups, name)
		}
	}
}

func (h *Hub) JoinGroup(connID, group string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	members, ok := h.groups[group]
	if !ok {
		members = make(map[string]struct{})
		h.groups[group] = members
	}
	members[connID] = struct{}{}
}

func (h *Hub) LeaveGroup(connID, group string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

func (h *Hub) Emit(group, event string, payload any) {
	h.EmitExcept(group, "", event, payload)
}

func (h *Hub) EmitExcept(group, exceptID, event string, payload any) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	for id := range h.groups[group] {
		if id == exceptID {
			continue
		}
		peer, ok := h.peers[id]
		if !ok {
			log.Debug().Str("conn-id", id).Str("group", group).Msg("Group member without peer")
			continue
		}
		peer.Send(event, payload)
	}
}

func (h *Hub) GroupSize(group string) int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.groups[group])
}
