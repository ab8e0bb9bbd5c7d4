package main

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeSocket(t *testing.T) (*Socket, net.Conn) {
	client, server := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return NewSocket("conn", server, ConnLogger{log.Logger}), client
}

func TestSocketReadMessage(t *testing.T) {
	socket, client := pipeSocket(t)
	go func() {
		wsutil.WriteClientText(client, []byte(`{"event":"join-room","ack":1,"data":"4821"}`))
		wsutil.WriteClientBinary(client, []byte{1, 2, 3})
		wsutil.WriteClientText(client, []byte(`{"event":"leave-room"}`))
	}()

	in, err := socket.ReadMessage()
	require.NoError(t, err)
	require.NotNil(t, in.Ack)
	assert.Equal(t, int64(1), *in.Ack)
	assert.Equal(t, JoinRoomMessage{Code: "4821"}, in.Message)

	in, err = socket.ReadMessage()
	require.NoError(t, err, "binary frames are skipped")
	assert.Equal(t, LeaveRoomMessage{}, in.Message)
}

func TestSocketReadMessageClosed(t *testing.T) {
	socket, client := pipeSocket(t)
	client.Close()
	_, err := socket.ReadMessage()
	assert.Error(t, err)
}

func TestSocketWritePump(t *testing.T) {
	socket, client := pipeSocket(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socket.Send(EventRoomUpdate, RoomUpdate{Count: 2, Message: msgMemberJoined})
	socket.ReplyFor(nil)(CreatedReply{Success: true})
	ack := int64(5)
	socket.ReplyFor(&ack)(CreatedReply{Success: true, RoomCode: "4821", IsHost: true})
	go socket.WritePump(ctx)

	data, err := wsutil.ReadServerText(client)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"room-update","data":{"count":2,"message":"member joined"}}`, string(data))

	data, err = wsutil.ReadServerText(client)
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, EventAck, env.Event)
	require.NotNil(t, env.Ack)
	assert.Equal(t, int64(5), *env.Ack)
	assert.JSONEq(t, `{"success":true,"roomCode":"4821","isHost":true}`, string(env.Data))
}

func TestSocketSendDropsWhenQueueFull(t *testing.T) {
	socket, _ := pipeSocket(t)
	for i := 0; i < sendQueueSize+10; i++ {
		socket.Send(EventRoomUpdate, RoomUpdate{Count: i})
	}
	assert.Len(t, socket.send, sendQueueSize)
}
