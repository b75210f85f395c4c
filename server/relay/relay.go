// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package relay mirrors a match to NATS. The status is kept in a JetStream key value
// bucket so late watchers see the latest one, goals are plain publishes.
package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	Bucket      = "soccer-match"
	StatusKey   = "status"
	GoalSubject = "soccer.goal"
)

type NATS struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

// Connect dials url and creates the bucket if it does not exist.
func Connect(ctx context.Context, url string) (*NATS, error) {
	nc, err := nats.Connect(url, nats.Name("soccer"), nats.Timeout(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, err
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      Bucket,
		Description: "latest match status",
		History:     1,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("bucket %s: %w", Bucket, err)
	}

	return &NATS{nc: nc, kv: kv}, nil
}

func (n *NATS) PublishStatus(ctx context.Context, status []byte) error {
	_, err := n.kv.Put(ctx, StatusKey, status)
	return err
}

func (n *NATS) PublishGoal(goal []byte) error {
	return n.nc.Publish(GoalSubject, goal)
}

// Close flushes pending goals.
func (n *NATS) Close() error {
	return n.nc.Drain()
}
