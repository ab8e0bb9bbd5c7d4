package main

import (
	"errors"
	"sync"

	"medisync/code"
)

const maxCodeAttempts = 10000

var (
	ErrRoomNotFound       = errors.New("room does not exist")
	ErrCodeSpaceExhausted = errors.New("no room codes available")
)

// Removal describes the outcome of Registry.RemoveMember.
type Removal struct {
	Removed   bool
	WasHost   bool
	Remaining int
}

// Registry owns every live room, keyed by room code.
type Registry struct {
	codes    map[string]*Room
	generate func() string
	lock     sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{codes: make(map[string]*Room), generate: code.GenerateRandom}
}

// Create registers a new room hosted by hostID under a fresh code.
func (s *Registry) Create(hostID string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := 0; i < maxCodeAttempts; i++ {
		c := s.generate()
		if _, exists := s.codes[c]; exists {
			continue
		}
		s.codes[c] = newRoom(c, hostID)
		return c, nil
	}
	return "", ErrCodeSpaceExhausted
}

func (s *Registry) Lookup(code string) (Room, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	room, exists := s.codes[code]
	if !exists {
		return Room{}, false
	}
	return room.snapshot(), true
}

// Join appends connID to the room's members. Joining twice under the same id
// leaves two entries.
func (s *Registry) Join(code, connID string) (Room, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	room, exists := s.codes[code]
	if !exists {
		return Room{}, ErrRoomNotFound
	}
	room.join(connID)
	return room.snapshot(), nil
}

// UpdatePlayback records url as the room's current media. Unknown rooms are
// ignored: the room may have been dissolved while a sync was in flight.
func (s *Registry) UpdatePlayback(code, url string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if room, exists := s.codes[code]; exists {
		room.setURL(url)
	}
}

// RemoveMember takes connID out of the room's members. It never deletes the
// room, even when the host leaves; callers dissolve it with Delete.
func (s *Registry) RemoveMember(code, connID string) Removal {
	s.lock.Lock()
	defer s.lock.Unlock()
	room, exists := s.codes[code]
	if !exists {
		return Removal{}
	}
	removed := room.leave(connID)
	return Removal{
		Removed:   removed,
		WasHost:   removed && room.Host == connID,
		Remaining: len(room.Members),
	}
}

func (s *Registry) Delete(code string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.codes, code)
}

func (s *Registry) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.codes)
}
