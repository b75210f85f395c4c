// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc             *dynamodb.DynamoDB
	db              *dynamo.DB
	scoresTable     dynamo.Table
	serversTable    dynamo.Table
	statisticsTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.scoresTable = ddb.db.Table("soccer-" + stage + "-scores")
	ddb.serversTable = ddb.db.Table("soccer-" + stage + "-servers")
	ddb.statisticsTable = ddb.db.Table("soccer-" + stage + "-statistics")
	return ddb, nil
}

// UpdateScore only ever raises a score.
func (ddb *DynamoDBDatabase) UpdateScore(score Score) error {
	err := ddb.scoresTable.Put(score).If("attribute_not_exists(goals) OR goals < ?", score.Goals).Run()
	if err != nil {
		if _, ok := err.(*dynamodb.ConditionalCheckFailedException); ok {
			return nil
		}
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadScores() (scores []Score, err error) {
	err = ddb.scoresTable.Scan().All(&scores)
	return
}

func (ddb *DynamoDBDatabase) ReadScoresByType(scoreType string) (scores []Score, err error) {
	err = ddb.scoresTable.Get("type", scoreType).All(&scores)
	return
}

func (ddb *DynamoDBDatabase) UpdateServer(server Server) error {
	return ddb.serversTable.Put(server).Run()
}

func (ddb *DynamoDBDatabase) ReadServersByRegion(region string) (servers []Server, err error) {
	query := ddb.serversTable.Get("region", region).Iter()

	for {
		var server Server
		ok := query.Next(&server)
		if !ok {
			err = query.Err()
			return
		}
		servers = append(servers, server)
	}
}

// AddStatistic atomically adds to the counters, creating the item if needed.
func (ddb *DynamoDBDatabase) AddStatistic(statistic Statistic) error {
	return ddb.statisticsTable.Update("region", statistic.Region).
		Range("day", statistic.Day).
		Add("spectators", statistic.Spectators).
		Add("goals", statistic.Goals).
		Run()
}
