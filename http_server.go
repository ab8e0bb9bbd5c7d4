package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gobwas/ws"
	"github.com/google/uuid"
)

const livenessText = "MedicalSyncPlayer Server Running"

type HTTPHandler struct {
	Registry *Registry
	Hub      *Hub
	Sessions *SessionHandler
}

func NewHTTPServer(registry *Registry, hub *Hub, sessions *SessionHandler) http.Handler {
	httpHandler := HTTPHandler{registry, hub, sessions}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)

	r.Get("/", httpHandler.liveness())
	r.Get("/health", httpHandler.health())
	r.Get("/ws", httpHandler.websocket())
	r.Get("/room/{roomCode}/url", httpHandler.getRoomCurrentURL())
	return r
}

func (h HTTPHandler) liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(livenessText))
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

func (h HTTPHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthResponse{Status: "ok", Rooms: h.Registry.Count()})
	}
}

func (h HTTPHandler) getRoomCurrentURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, exists := h.Registry.Lookup(chi.URLParam(r, "roomCode"))
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if room.CurrentURL == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(*room.CurrentURL))
	}
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		defer conn.Close()

		connID := uuid.NewString()
		logger := GetConnLogger(r.RemoteAddr, connID)
		socket := NewSocket(connID, conn, logger)
		h.Hub.Attach(socket)
		h.Sessions.Connect(connID)
		logger.Connected()

		ctx, cancel := context.WithCancel(context.Background())
		pumpDone := make(chan struct{})
		go func() {
			socket.WritePump(ctx)
			close(pumpDone)
		}()

		for {
			in, err := socket.ReadMessage()
			if err != nil {
				if errors.Is(err, ErrUndefinedType) {
					logger.UnknownEvent()
					continue
				}
				if errors.Is(err, ErrMalformedPayload) {
					logger.IgnoredMessage(err)
					continue
				}
				logger.Disconnected(err)
				break
			}
			h.dispatch(socket, in)
		}

		h.Sessions.Disconnect(connID)
		h.Hub.Detach(connID)
		cancel()
		<-pumpDone
		socket.Flush()
	}
}

func (h HTTPHandler) dispatch(socket *Socket, in Inbound) {
	reply := socket.ReplyFor(in.Ack)
	switch m := in.Message.(type) {
	case CreateRoomMessage:
		h.Sessions.CreateRoom(socket.ID(), reply)
	case JoinRoomMessage:
		h.Sessions.JoinRoom(socket.ID(), m.Code, reply)
	case SyncVideoMessage:
		h.Sessions.SyncVideo(socket.ID(), m)
	case LeaveRoomMessage:
		h.Sessions.LeaveRoom(socket.ID())
	}
}
