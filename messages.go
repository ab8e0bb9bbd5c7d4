package main

import (
	"encoding/json"
	"errors"
)

const (
	EventCreateRoom = "create-room"
	EventJoinRoom   = "join-room"
	EventSyncVideo  = "sync-video"
	EventLeaveRoom  = "leave-room"

	EventAck        = "ack"
	EventRoomUpdate = "room-update"
	EventVideoSync  = "video-sync"
	EventRoomClosed = "room-closed"
)

const (
	msgMemberJoined  = "member joined"
	msgMemberLeft    = "member left"
	msgRoomDissolved = "host left, room dissolved"
	msgAlreadyInRoom = "already in a room"

	syncTypeSuper = "super-sync"
)

var (
	ErrUndefinedType    = errors.New("incorrect type")
	ErrMalformedPayload = errors.New("malformed payload")
)

// Envelope is the frame layout in both directions. Ack is set on requests
// that expect a reply and echoed on the reply.
type Envelope struct {
	Event string          `json:"event"`
	Ack   *int64          `json:"ack,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outboundEnvelope struct {
	Event string `json:"event"`
	Ack   *int64 `json:"ack,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type CreateRoomMessage struct{}

type JoinRoomMessage struct {
	Code string
}

type SyncVideoMessage struct {
	URL    string  `json:"url"`
	Time   float64 `json:"time"`
	Paused bool    `json:"paused"`
}

type LeaveRoomMessage struct{}

// Inbound is a decoded request and its optional ack id.
type Inbound struct {
	Ack     *int64
	Message any
}

type RoomUpdate struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

type VideoSync struct {
	Type   string  `json:"type"`
	URL    string  `json:"url"`
	Time   float64 `json:"time"`
	Paused bool    `json:"paused"`
}

type RoomClosed struct {
	Message string `json:"message"`
}

type CreatedReply struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"roomCode"`
	IsHost   bool   `json:"isHost"`
}

type JoinedReply struct {
	Success    bool    `json:"success"`
	RoomCode   string  `json:"roomCode"`
	IsHost     bool    `json:"isHost"`
	CurrentURL *string `json:"currentUrl"`
}

type FailureReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func failure(err error) FailureReply {
	return FailureReply{Success: false, Message: err.Error()}
}

func DecodeJSON[T any](data []byte) (T, error) {
	var parsed T
	err := json.Unmarshal(data, &parsed)
	return parsed, err
}

// DecodeInbound parses one client frame into one of the *Message structs.
func DecodeInbound(frame []byte) (Inbound, error) {
	env, err := DecodeJSON[Envelope](frame)
	if err != nil {
		return Inbound{}, errors.Join(ErrMalformedPayload, err)
	}
	in := Inbound{Ack: env.Ack}
	switch env.Event {
	case EventCreateRoom:
		in.Message = CreateRoomMessage{}
	case EventJoinRoom:
		code, err := DecodeJSON[string](env.Data)
		if err != nil {
			return Inbound{}, errors.Join(ErrMalformedPayload, err)
		}
		in.Message = JoinRoomMessage{Code: code}
	case EventSyncVideo:
		sync, err := DecodeJSON[SyncVideoMessage](env.Data)
		if err != nil {
			return Inbound{}, errors.Join(ErrMalformedPayload, err)
		}
		in.Message = sync
	case EventLeaveRoom:
		in.Message = LeaveRoomMessage{}
	default:
		return Inbound{}, ErrUndefinedType
	}
	return in, nil
}

func EncodeEvent(event string, payload any) ([]byte, error) {
	return json.Marshal(outboundEnvelope{Event: event, Data: payload})
}

func EncodeReply(ack int64, payload any) ([]byte, error) {
	return json.Marshal(outboundEnvelope{Event: EventAck, Ack: &ack, Data: payload})
}
