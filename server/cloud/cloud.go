// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"github.com/SoftbearStudios/soccer/server/cloud/db"
	"github.com/SoftbearStudios/soccer/server/cloud/dns"
	"github.com/SoftbearStudios/soccer/server/cloud/fs"
	jsoniter "github.com/json-iterator/go"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const UpdatePeriod = 30 * time.Second

const (
	// Standings kept in the scores table.
	standingAll  = "goals/all"
	standingWeek = "goals/week"
	standingDay  = "goals/day"

	leaderboardSize = 10
	// Leave 5 scores extra in case some expire/are moderated out
	thresholdIndex = leaderboardSize + 5

	day = int64(60 * 60 * 24)
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cloud keeps a server slot, standings and statistics in AWS.
type Cloud struct {
	region     string
	serverSlot int
	ip         net.IP
	database   db.Database
	dns        dns.DNS
	fs         fs.Filesystem

	// Statistics since last flush.
	spectators int64
	goals      int64
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	builder.WriteString(cloud.region)
	builder.WriteByte(' ')
	builder.WriteString(strconv.Itoa(cloud.serverSlot))
	builder.WriteByte(' ')
	builder.WriteString(cloud.ip.String())
	builder.WriteByte(']')
	return builder.String()
}

// New claims a server slot. It fails outside of AWS.
func New() (*Cloud, error) {
	cloud := &Cloud{}

	userData, err := loadUserData()
	if err != nil {
		return nil, err
	}

	cloud.region = userData.Region

	cloud.ip, err = getPublicIP()
	if err != nil {
		return nil, err
	}
	session, err := getAWSSession(cloud.region)
	if err != nil {
		return nil, err
	}

	cloud.database, err = db.NewDynamoDBDatabase(session, userData.Stage)
	if err != nil {
		return nil, err
	}
	cloud.dns, err = dns.NewRoute53DNS(session, userData.Domain, userData.Route53ZoneID)
	if err != nil {
		return nil, err
	}
	cloud.fs, err = fs.NewS3Filesystem(session, userData.Stage)
	if err != nil {
		return nil, err
	}

	servers, err := cloud.database.ReadServersByRegion(cloud.region)
	if err != nil {
		return nil, err
	}

	cloud.serverSlot = allocateSlot(servers, cloud.ip, userData.ServerSlots)
	if cloud.serverSlot == -1 {
		return nil, errors.New("no empty server slot")
	}

	err = cloud.dns.UpdateRoute(cloud.region, cloud.serverSlot, cloud.ip)
	if err != nil {
		return nil, err
	}

	err = cloud.UpdateServer(0)
	if err != nil {
		return nil, err
	}

	return cloud, nil
}

// allocateSlot reclaims the slot of ip, or else returns the lowest free slot, or -1.
func allocateSlot(servers []db.Server, ip net.IP, slots int) int {
	for _, server := range servers {
		if ip.Equal(server.IP) {
			return server.Slot
		}
	}

scan:
	for slot := 0; slot < slots; slot++ {
		for _, server := range servers {
			if server.Slot == slot {
				// Slot is taken
				continue scan
			}
		}
		return slot
	}
	return -1
}

func (cloud *Cloud) UpdatePeriod() time.Duration {
	return UpdatePeriod
}

// Call at least every UpdatePeriod
func (cloud *Cloud) UpdateServer(spectators int) error {
	return cloud.database.UpdateServer(db.Server{
		Region:     cloud.region,
		Slot:       cloud.serverSlot,
		IP:         cloud.ip,
		Spectators: spectators,
		TTL:        time.Now().Unix() + int64(UpdatePeriod/time.Second) + 5,
	})
}

func (cloud *Cloud) IncrementSpectatorStatistic() {
	atomic.AddInt64(&cloud.spectators, 1)
}

func (cloud *Cloud) IncrementGoalStatistic() {
	atomic.AddInt64(&cloud.goals, 1)
}

// FlushStatistics adds the counters to today's statistic and resets them.
func (cloud *Cloud) FlushStatistics() error {
	spectators := atomic.SwapInt64(&cloud.spectators, 0)
	goals := atomic.SwapInt64(&cloud.goals, 0)
	if spectators == 0 && goals == 0 {
		return nil
	}

	err := cloud.database.AddStatistic(db.Statistic{
		Region:     cloud.region,
		Day:        time.Now().Unix() / day,
		Spectators: int(spectators),
		Goals:      int(goals),
	})
	if err != nil {
		// Try again next time
		atomic.AddInt64(&cloud.spectators, spectators)
		atomic.AddInt64(&cloud.goals, goals)
	}
	return err
}

type LeaderboardScore struct {
	Name  string `json:"name"`
	Goals int    `json:"goals"`
}

// standings groups scores by type, keeps the top leaderboardSize of each and returns
// the minimum goals to enter each standing.
func standings(dbScores []db.Score) (leaderboard map[string][]LeaderboardScore, thresholds map[string]int) {
	leaderboard = make(map[string][]LeaderboardScore)
	thresholds = make(map[string]int)

	for _, dbScore := range dbScores {
		leaderboard[dbScore.Type] = append(leaderboard[dbScore.Type], LeaderboardScore{
			Name:  dbScore.Name,
			Goals: dbScore.Goals,
		})
	}

	for scoreType, scores := range leaderboard {
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].Goals > scores[j].Goals
		})

		if len(scores) > thresholdIndex {
			thresholds[scoreType] = scores[thresholdIndex].Goals
		}

		if len(scores) > leaderboardSize {
			leaderboard[scoreType] = scores[:leaderboardSize]
		}
	}
	return
}

// UpdateLeaderboard raises the standings of scorers and uploads leaderboard.json.
func (cloud *Cloud) UpdateLeaderboard(scorers map[string]int) (err error) {
	dbScores, err := cloud.database.ReadScores()
	if err != nil {
		return
	}

	leaderboard, thresholds := standings(dbScores)

	// Seconds
	now := time.Now().Unix()
	ttls := map[string]int64{
		standingAll:  0,
		standingWeek: now + day*7,
		standingDay:  now + day,
	}

	for name, goals := range scorers {
		for standing, ttl := range ttls {
			if goals <= thresholds[standing] {
				continue
			}
			err = cloud.database.UpdateScore(db.Score{
				Type:  standing,
				Name:  name,
				Goals: goals,
				TTL:   ttl,
			})
			if err != nil {
				return
			}
		}
	}

	leaderboardJSON, err := json.Marshal(leaderboard)
	if err == nil {
		err = cloud.fs.UploadStaticFile("leaderboard.json", 10, leaderboardJSON)
	}
	return
}

// UploadMatchSnapshot uploads the encoded snapshot as match.json.
func (cloud *Cloud) UploadMatchSnapshot(data []byte) error {
	return cloud.fs.UploadStaticFile("match.json", 5, data)
}
