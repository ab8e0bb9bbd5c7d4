package main

import "slices"

// Room is a snapshot of one live room. Values handed out by the Registry are
// copies and may be read without holding any lock.
type Room struct {
	Code       string
	Host       string
	Members    []string
	CurrentURL *string
}

func newRoom(code, host string) *Room {
	return &Room{Code: code, Host: host, Members: []string{host}}
}

func (r *Room) snapshot() Room {
	s := *r
	s.Members = slices.Clone(r.Members)
	if r.CurrentURL != nil {
		url := *r.CurrentURL
		s.CurrentURL = &url
	}
	return s
}

func (r *Room) join(connID string) {
	r.Members = append(r.Members, connID)
}

// leave drops every entry of connID and reports whether any was present.
func (r *Room) leave(connID string) bool {
	before := len(r.Members)
	r.Members = slices.DeleteFunc(r.Members, func(id string) bool { return id == connID })
	return len(r.Members) != before
}

func (r *Room) setURL(url string) {
	r.CurrentURL = &url
}
