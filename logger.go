package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

type ConnLogger struct {
	zerolog zerolog.Logger
}

func GetConnLogger(ip string, connID string) ConnLogger {
	return ConnLogger{log.With().Str("ip", ip).Str("conn-id", connID).Logger()}
}

func (l ConnLogger) Connected() {
	l.zerolog.Info().Msg("Connected")
}

func (l ConnLogger) Disconnected(err error) {
	l.zerolog.Info().Err(err).Msg("Disconnected")
}

func (l ConnLogger) IgnoredMessage(err error) {
	l.zerolog.Warn().Err(err).Msg("Ignored message")
}

func (l ConnLogger) UnknownEvent() {
	l.zerolog.Debug().Msg("Unknown event")
}

func (l ConnLogger) DroppedFrame(event string) {
	l.zerolog.Warn().Str("event", event).Msg("Send queue full, frame dropped")
}

func (l ConnLogger) WriteFailed(err error) {
	l.zerolog.Error().Err(err).Msg("Error while writing frame")
}

func LogCreatedRoom(connID, roomCode string) {
	log.Info().Str("conn-id", connID).Str("room-code", roomCode).Msg("Created")
}

func LogCreateFailed(connID string, err error) {
	log.Error().Err(err).Str("conn-id", connID).Msg("Room creation failed")
}

func LogJoinedRoom(connID, roomCode string, count int) {
	log.Info().Str("conn-id", connID).Str("room-code", roomCode).Int("count", count).Msg("Joined room")
}

func LogLeftRoom(connID, roomCode string, count int) {
	log.Info().Str("conn-id", connID).Str("room-code", roomCode).Int("count", count).Msg("Left room")
}

func LogRoomDissolved(roomCode string) {
	log.Info().Str("room-code", roomCode).Msg("Host left, removing room")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogStoppedServer() {
	log.Info().Msg("Server stopped")
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}
