// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/soccer/server"
	"github.com/SoftbearStudios/soccer/server/cloud"
	"github.com/SoftbearStudios/soccer/server/relay"
	"github.com/SoftbearStudios/soccer/server/soccer"
	"github.com/charmbracelet/log"
	"golang.org/x/net/netutil"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"
)

// options are the command line flags.
type options struct {
	auth           string
	debug          bool
	left, right    string
	maxConnections int
	natsURL        string
	offline        bool
	paramsPath     string
	port           int
	seed           int64
}

func main() {
	var o options
	flag.StringVar(&o.auth, "auth", "", "admin auth code")
	flag.BoolVar(&o.debug, "debug", false, "log state transitions")
	flag.StringVar(&o.left, "left", "", "name of the team defending the left goal")
	flag.StringVar(&o.right, "right", "", "name of the team defending the right goal")
	flag.IntVar(&o.maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.StringVar(&o.natsURL, "nats", "", "NATS server to relay the match to")
	flag.BoolVar(&o.offline, "offline", false, "don't try to use the cloud")
	flag.StringVar(&o.paramsPath, "params", "", "yaml file overriding the default params")
	flag.IntVar(&o.port, "port", 8192, "http service port, negative to only simulate")
	flag.Int64Var(&o.seed, "seed", 0, "random seed, 0 for a random one")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "soccer",
	})
	if o.debug {
		logger.SetLevel(log.DebugLevel)
	}

	// Fatal exits without running deferred calls, so run closes everything it opened first.
	if err := run(logger, o); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func run(logger *log.Logger, o options) error {
	params := soccer.DefaultParams()
	if o.paramsPath != "" {
		var err error
		if params, err = soccer.LoadParams(o.paramsPath); err != nil {
			return fmt.Errorf("loading params %s: %w", o.paramsPath, err)
		}
	}

	var c server.Cloud = server.Offline{}
	if !o.offline {
		awsCloud, err := cloud.New()
		if err != nil {
			// Cloud is not required for server to function, just log an error
			logger.Warn("cloud error", "err", err)
		} else {
			c = awsCloud
		}
	}

	var r server.Relay
	if o.natsURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		n, err := relay.Connect(ctx, o.natsURL)
		cancel()
		if err != nil {
			return fmt.Errorf("relay: %w", err)
		}
		defer n.Close()
		r = n
	}

	hub, err := server.NewHub(server.HubOptions{
		Cloud:  c,
		Relay:  r,
		Params: params,
		Seed:   o.seed,
		Left:   o.left,
		Right:  o.right,
		Auth:   o.auth,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("hub: %w", err)
	}

	if o.port < 0 {
		logger.Info("simulation started")
		hub.Run()
		return nil
	}

	l, err := net.Listen("tcp", fmt.Sprint(":", o.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, o.maxConnections)

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)

	go hub.Run()

	logger.Info("server started", "port", o.port)
	return fmt.Errorf("serve: %w", http.Serve(l, nil))
}
