// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"github.com/SoftbearStudios/soccer/server/soccer"
	"github.com/vmihailenco/msgpack/v5"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestParseEncoding(t *testing.T) {
	if ParseEncoding("msgpack") != EncodingMsgpack {
		t.Error("expected msgpack")
	}
	for _, format := range []string{"", "json", "xml"} {
		if ParseEncoding(format) != EncodingJSON {
			t.Errorf("%q: expected json", format)
		}
	}
}

func TestEncodeMessageTo_Msgpack(t *testing.T) {
	var buf bytes.Buffer
	message := Message{Data: Goal{GoalEvent: soccer.GoalEvent{Team: "Away", Scorer: "Eusebio", Score: [2]int{0, 1}}}}
	if err := encodeMessageTo(&buf, EncodingMsgpack, message); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Type string `msgpack:"type"`
		Data struct {
			Left   bool   `msgpack:"left"`
			Team   string `msgpack:"team"`
			Scorer string `msgpack:"scorer"`
			Score  []int  `msgpack:"score"`
		} `msgpack:"data"`
	}
	if err := msgpack.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != "goal" || decoded.Data.Team != "Away" || decoded.Data.Scorer != "Eusebio" || decoded.Data.Left {
		t.Errorf("unexpected message %+v", decoded)
	}
	if len(decoded.Data.Score) != 2 || decoded.Data.Score[1] != 1 {
		t.Errorf("unexpected score %v", decoded.Data.Score)
	}
}

func TestEncodeMessageTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := encodeMessageTo(&buf, EncodingJSON, Message{Data: Leaderboard{}}); err != nil {
		t.Fatal(err)
	}
	if expected := `{"data":{"leaderboard":null},"type":"leaderboard"}` + "\n"; buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestSpectator(t *testing.T) {
	h := newTestHub(t)
	go h.Run()

	server := httptest.NewServer(http.HandlerFunc(h.ServeSocket))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	u.Scheme = "ws"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	spectator, err := DialSpectator(ctx, SpectatorOptions{URL: *u})
	if err != nil {
		t.Fatal(err)
	}
	defer spectator.Close()

	// The leaderboard is sent on register.
	first, err := spectator.Receive()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := first.(Leaderboard); !ok {
		t.Fatalf("expected leaderboard first, got %T", first)
	}

	if err = spectator.Send(RenameTeam{Left: true, Name: "Rovers"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		out, err := spectator.Receive()
		if err != nil {
			t.Fatal(err)
		}
		if update, ok := out.(*Update); ok && update.Teams[0].Name == "Rovers" {
			if update.Teams[0].Players[0].Role != soccer.Goalkeeper || update.Spectators != 1 {
				t.Errorf("unexpected update %+v", update.Teams[0])
			}
			return
		}
	}
	t.Error("rename never showed up in an update")
}
