// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

type (
	SpectatorOptions struct {
		URL url.URL
	}

	// Spectator watches a remote hub over a websocket, the way a browser would.
	// Receive must only be called from one goroutine, Send is safe from any.
	Spectator struct {
		conn *websocket.Conn
		mu   sync.Mutex // guards writes
	}

	// spectatorMessage defers decoding data until the type is known.
	spectatorMessage struct {
		Data jsoniter.RawMessage `json:"data"`
		Type messageType         `json:"type"`
	}
)

func DialSpectator(ctx context.Context, options SpectatorOptions) (*Spectator, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, options.URL.String(), nil)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(1 << 20)
	return &Spectator{conn: conn}, nil
}

// Receive blocks for the next message, which is a Goal, a Leaderboard or an *Update.
func (s *Spectator) Receive() (interface{}, error) {
	_, r, err := s.conn.NextReader()
	if err != nil {
		return nil, err
	}

	var message spectatorMessage
	if err = json.NewDecoder(r).Decode(&message); err != nil {
		return nil, err
	}

	var out interface{}
	switch message.Type {
	case "goal":
		var goal Goal
		err = json.Unmarshal(message.Data, &goal)
		out = goal
	case "leaderboard":
		var leaderboard Leaderboard
		err = json.Unmarshal(message.Data, &leaderboard)
		out = leaderboard
	case "update":
		update := new(Update)
		err = json.Unmarshal(message.Data, update)
		out = update
	default:
		return nil, fmt.Errorf("unknown message type %q", message.Type)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Send sends an inbound such as Kickoff or RenameTeam.
func (s *Spectator) Send(in inbound) error {
	buf, err := json.Marshal(messageJSON{
		Data: in,
		Type: messageType(uncapitalize(reflect.Indirect(reflect.ValueOf(in)).Type().Name())),
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, buf)
}

func (s *Spectator) Close() error {
	s.mu.Lock()
	err := s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.mu.Unlock()
	if err == nil {
		time.Sleep(time.Second / 4)
	}
	return s.conn.Close()
}
