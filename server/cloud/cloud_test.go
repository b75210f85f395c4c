// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"github.com/SoftbearStudios/soccer/server/cloud/db"
	"net"
	"strconv"
	"testing"
)

type memoryDatabase struct {
	scores     []db.Score
	servers    []db.Server
	statistics []db.Statistic
	fail       bool
}

func (m *memoryDatabase) UpdateScore(score db.Score) error {
	for i := range m.scores {
		s := &m.scores[i]
		if s.Type == score.Type && s.Name == score.Name {
			if s.Goals < score.Goals {
				*s = score
			}
			return nil
		}
	}
	m.scores = append(m.scores, score)
	return nil
}

func (m *memoryDatabase) ReadScores() ([]db.Score, error) {
	return m.scores, nil
}

func (m *memoryDatabase) ReadScoresByType(scoreType string) (scores []db.Score, err error) {
	for _, s := range m.scores {
		if s.Type == scoreType {
			scores = append(scores, s)
		}
	}
	return
}

func (m *memoryDatabase) UpdateServer(server db.Server) error {
	m.servers = append(m.servers, server)
	return nil
}

func (m *memoryDatabase) ReadServersByRegion(region string) ([]db.Server, error) {
	return m.servers, nil
}

func (m *memoryDatabase) AddStatistic(statistic db.Statistic) error {
	if m.fail {
		return errors.New("unavailable")
	}
	m.statistics = append(m.statistics, statistic)
	return nil
}

type memoryFilesystem map[string][]byte

func (m memoryFilesystem) UploadStaticFile(filename string, _ int, data []byte) error {
	m[filename] = data
	return nil
}

func TestAllocateSlot(t *testing.T) {
	ip := net.IPv4(10, 0, 0, 1)
	servers := []db.Server{
		{Slot: 0, IP: net.IPv4(10, 0, 0, 2)},
		{Slot: 2, IP: net.IPv4(10, 0, 0, 3)},
	}

	if slot := allocateSlot(servers, ip, 3); slot != 1 {
		t.Errorf("expected free slot 1, got %d", slot)
	}
	if slot := allocateSlot(append(servers, db.Server{Slot: 7, IP: ip}), ip, 3); slot != 7 {
		t.Errorf("expected reclaimed slot 7, got %d", slot)
	}
	if slot := allocateSlot(servers, ip, 1); slot != -1 {
		t.Errorf("expected no slot, got %d", slot)
	}
}

func TestStandings(t *testing.T) {
	var scores []db.Score
	for i := 0; i < 20; i++ {
		scores = append(scores, db.Score{Type: standingAll, Name: "P" + strconv.Itoa(i), Goals: i})
	}
	scores = append(scores, db.Score{Type: standingDay, Name: "Solo", Goals: 1})

	leaderboard, thresholds := standings(scores)

	all := leaderboard[standingAll]
	if len(all) != leaderboardSize || all[0].Goals != 19 || all[9].Goals != 10 {
		t.Errorf("unexpected all-time standing %v", all)
	}
	if thresholds[standingAll] != 4 {
		t.Errorf("expected threshold 4, got %d", thresholds[standingAll])
	}
	if len(leaderboard[standingDay]) != 1 || thresholds[standingDay] != 0 {
		t.Errorf("unexpected daily standing %v", leaderboard[standingDay])
	}
}

func TestUpdateLeaderboard(t *testing.T) {
	database := &memoryDatabase{}
	files := make(memoryFilesystem)
	cloud := &Cloud{database: database, fs: files}

	if err := cloud.UpdateLeaderboard(map[string]int{"Pele": 3, "Eusebio": 1}); err != nil {
		t.Fatal(err)
	}
	if len(database.scores) != 6 {
		t.Errorf("expected 2 scorers in 3 standings, got %v", database.scores)
	}
	for _, score := range database.scores {
		if (score.Type == standingAll) != (score.TTL == 0) {
			t.Errorf("unexpected ttl %v", score)
		}
	}

	// The upload reflects the standings read before the update.
	if err := cloud.UpdateLeaderboard(nil); err != nil {
		t.Fatal(err)
	}
	var leaderboard map[string][]LeaderboardScore
	if err := json.Unmarshal(files["leaderboard.json"], &leaderboard); err != nil {
		t.Fatal(err)
	}
	if day := leaderboard[standingDay]; len(day) != 2 || day[0].Name != "Pele" {
		t.Errorf("unexpected daily standing %v", day)
	}
}

func TestFlushStatistics(t *testing.T) {
	database := &memoryDatabase{fail: true}
	cloud := &Cloud{database: database, region: "us-east-1"}

	cloud.IncrementSpectatorStatistic()
	cloud.IncrementSpectatorStatistic()
	cloud.IncrementGoalStatistic()

	if err := cloud.FlushStatistics(); err == nil {
		t.Fatal("expected error")
	}

	// Kept for the next flush.
	database.fail = false
	if err := cloud.FlushStatistics(); err != nil {
		t.Fatal(err)
	}
	if len(database.statistics) != 1 {
		t.Fatalf("expected 1 statistic, got %d", len(database.statistics))
	}
	if s := database.statistics[0]; s.Spectators != 2 || s.Goals != 1 || s.Region != "us-east-1" {
		t.Errorf("unexpected statistic %+v", s)
	}

	// Nothing to flush.
	if err := cloud.FlushStatistics(); err != nil || len(database.statistics) != 1 {
		t.Errorf("expected no-op flush, got %v, %d", err, len(database.statistics))
	}
}

func TestParseUserData(t *testing.T) {
	data, err := parseUserData("DOMAIN=\"example.com\"\nREGION=us-east-1\nSTAGE=prod\nSERVER_SLOTS=4\nROUTE53_ZONEID=Z123\n")
	if err != nil {
		t.Fatal(err)
	}
	if data.Domain != "example.com" || data.ServerSlots != 4 || data.Route53ZoneID != "Z123" {
		t.Errorf("unexpected user data %+v", data)
	}

	if _, err = parseUserData("REGION=us-east-1"); err == nil {
		t.Error("expected error for missing domain")
	}
}
