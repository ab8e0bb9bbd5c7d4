package main

import (
	"context"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

const (
	sendQueueSize = 64
	pingInterval  = 25 * time.Second
	readTimeout   = 60 * time.Second
	writeTimeout  = 10 * time.Second
)

// lockedWriter serializes writes from the write pump and the control frame
// replies issued by the read loop.
type lockedWriter struct {
	conn net.Conn
	lock sync.Mutex
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return 0, err
	}
	return w.conn.Write(p)
}

// Socket is a websocket Peer. Reads happen on the caller's goroutine through
// ReadMessage; writes are queued and flushed by WritePump.
type Socket struct {
	id      string
	conn    net.Conn
	writer  *lockedWriter
	reader  *wsutil.Reader
	control wsutil.FrameHandlerFunc
	send    chan []byte
	logger  ConnLogger
}

func NewSocket(id string, conn net.Conn, logger ConnLogger) *Socket {
	writer := &lockedWriter{conn: conn}
	control := wsutil.ControlFrameHandler(writer, ws.StateServerSide)
	return &Socket{
		id:     id,
		conn:   conn,
		writer: writer,
		reader: &wsutil.Reader{
			Source:         conn,
			State:          ws.StateServerSide,
			CheckUTF8:      true,
			OnIntermediate: control,
		},
		control: control,
		send:    make(chan []byte, sendQueueSize),
		logger:  logger,
	}
}

func (s *Socket) ID() string {
	return s.id
}

// Send queues an event frame. A full queue drops the frame.
func (s *Socket) Send(event string, payload any) {
	frame, err := EncodeEvent(event, payload)
	if err != nil {
		s.logger.WriteFailed(err)
		return
	}
	s.enqueue(event, frame)
}

func (s *Socket) SendReply(ack int64, payload any) {
	frame, err := EncodeReply(ack, payload)
	if err != nil {
		s.logger.WriteFailed(err)
		return
	}
	s.enqueue(EventAck, frame)
}

func (s *Socket) enqueue(event string, frame []byte) {
	select {
	case s.send <- frame:
	default:
		s.logger.DroppedFrame(event)
	}
}

// ReplyFor returns the reply callback for a request carrying ack.
func (s *Socket) ReplyFor(ack *int64) Reply {
	if ack == nil {
		return noReply
	}
	id := *ack
	return func(payload any) { s.SendReply(id, payload) }
}

// ReadMessage blocks until the next text frame and decodes it. Control frames
// are answered in place; every frame, pongs included, extends the read
// deadline.
func (s *Socket) ReadMessage() (Inbound, error) {
	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return Inbound{}, err
		}
		hdr, err := s.reader.NextFrame()
		if err != nil {
			return Inbound{}, err
		}
		if hdr.OpCode.IsControl() {
			if err := s.control(hdr, s.reader); err != nil {
				return Inbound{}, err
			}
			continue
		}
		if hdr.OpCode&ws.OpText == 0 {
			if err := s.reader.Discard(); err != nil {
				return Inbound{}, err
			}
			continue
		}
		data, err := io.ReadAll(s.reader)
		if err != nil {
			return Inbound{}, err
		}
		return DecodeInbound(data)
	}
}

// WritePump flushes queued frames and pings the client until ctx is done or
// a write fails.
func (s *Socket) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-s.send:
			if err := wsutil.WriteServerText(s.writer, frame); err != nil {
				s.logger.WriteFailed(err)
				s.conn.Close()
				return
			}
		case <-ticker.C:
			if _, err := s.writer.Write(ws.CompiledPing); err != nil {
				s.logger.WriteFailed(err)
				s.conn.Close()
				return
			}
		}
	}
}

// Flush writes whatever is still queued, without blocking for more.
func (s *Socket) Flush() {
	for {
		select {
		case frame := <-s.send:
			if err := wsutil.WriteServerText(s.writer, frame); err != nil {
				return
			}
		default:
			return
		}
	}
}
