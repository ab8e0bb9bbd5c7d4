package main

import (
	"errors"
	"sync"
)

var ErrAlreadyInRoom = errors.New(msgAlreadyInRoom)

// Session is the room membership of a single connection.
type Session struct {
	RoomCode string
	IsHost   bool
}

func (s Session) InRoom() bool {
	return s.RoomCode != ""
}

// Reply answers a request. It is never nil inside the handler.
type Reply func(payload any)

func noReply(any) {}

// SessionHandler applies connection events to the Registry and fans the
// results out through a Broadcaster. Every event is handled as one step under
// a single lock, so membership changes and the broadcasts they cause are never
// interleaved with another connection's event.
type SessionHandler struct {
	registry *Registry
	groups   Broadcaster
	sessions map[string]*Session
	lock     sync.Mutex
}

func NewSessionHandler(registry *Registry, groups Broadcaster) *SessionHandler {
	return &SessionHandler{registry: registry, groups: groups, sessions: make(map[string]*Session)}
}

func (h *SessionHandler) Connect(connID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.sessions[connID]; !ok {
		h.sessions[connID] = &Session{}
	}
}

// Session returns a copy of the connection's session state.
func (h *SessionHandler) Session(connID string) (Session, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	sess, ok := h.sessions[connID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

func (h *SessionHandler) session(connID string) *Session {
	sess, ok := h.sessions[connID]
	if !ok {
		sess = &Session{}
		h.sessions[connID] = sess
	}
	return sess
}

func (h *SessionHandler) CreateRoom(connID string, reply Reply) {
	if reply == nil {
		reply = noReply
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	sess := h.session(connID)
	if sess.InRoom() {
		reply(failure(ErrAlreadyInRoom))
		return
	}
	code, err := h.registry.Create(connID)
	if err != nil {
		LogCreateFailed(connID, err)
		reply(failure(err))
		return
	}
	sess.RoomCode = code
	sess.IsHost = true
	h.groups.JoinGroup(connID, code)
	LogCreatedRoom(connID, code)
	reply(CreatedReply{Success: true, RoomCode: code, IsHost: true})
}

func (h *SessionHandler) JoinRoom(connID, code string, reply Reply) {
	if reply == nil {
		reply = noReply
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	sess := h.session(connID)
	if sess.InRoom() {
		reply(failure(ErrAlreadyInRoom))
		return
	}
	room, err := h.registry.Join(code, connID)
	if err != nil {
		reply(failure(err))
		return
	}
	sess.RoomCode = code
	sess.IsHost = false
	h.groups.JoinGroup(connID, code)
	LogJoinedRoom(connID, code, len(room.Members))
	h.groups.Emit(code, EventRoomUpdate, RoomUpdate{Count: len(room.Members), Message: msgMemberJoined})
	reply(JoinedReply{Success: true, RoomCode: code, IsHost: false, CurrentURL: room.CurrentURL})
}

// SyncVideo relays the host's playback state to the rest of its room. Syncs
// from anyone but a host are dropped without a reply.
func (h *SessionHandler) SyncVideo(connID string, msg SyncVideoMessage) {
	h.lock.Lock()
	defer h.lock.Unlock()
	sess, ok := h.sessions[connID]
	if !ok || !sess.InRoom() || !sess.IsHost {
		return
	}
	h.registry.UpdatePlayback(sess.RoomCode, msg.URL)
	h.groups.EmitExcept(sess.RoomCode, connID, EventVideoSync, VideoSync{
		Type:   syncTypeSuper,
		URL:    msg.URL,
		Time:   msg.Time,
		Paused: msg.Paused,
	})
}

func (h *SessionHandler) LeaveRoom(connID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if sess, ok := h.sessions[connID]; ok {
		h.leaveRoom(connID, sess)
	}
}

// Disconnect tears down the connection's membership and forgets its session.
func (h *SessionHandler) Disconnect(connID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	sess, ok := h.sessions[connID]
	if !ok {
		return
	}
	h.leaveRoom(connID, sess)
	delete(h.sessions, connID)
}

// leaveRoom is the shared teardown for leave-room and disconnect. It is a
// no-op for a connection that is not in a room.
func (h *SessionHandler) leaveRoom(connID string, sess *Session) {
	if !sess.InRoom() {
		return
	}
	code := sess.RoomCode
	defer func() {
		h.groups.LeaveGroup(connID, code)
		*sess = Session{}
	}()
	room, exists := h.registry.Lookup(code)
	if !exists {
		return
	}
	removal := h.registry.RemoveMember(code, connID)
	switch {
	case removal.WasHost:
		h.groups.Emit(code, EventRoomClosed, RoomClosed{Message: msgRoomDissolved})
		h.registry.Delete(code)
		h.releaseMembers(code, room.Members)
		LogRoomDissolved(code)
	case removal.Removed:
		h.groups.Emit(code, EventRoomUpdate, RoomUpdate{Count: removal.Remaining, Message: msgMemberLeft})
		LogLeftRoom(connID, code, removal.Remaining)
	}
}

// releaseMembers returns the members of a dissolved room to the unjoined state.
func (h *SessionHandler) releaseMembers(code string, members []string) {
	for _, id := range members {
		if sess, ok := h.sessions[id]; ok && sess.RoomCode == code {
			*sess = Session{}
		}
		h.groups.LeaveGroup(id, code)
	}
}
