// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"runtime"
	"strings"
	"time"
)

// Debug logs debugging info and appends a line to a tmp file.
func (h *Hub) Debug() {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	var sockets, locals int
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if _, ok := client.(*SocketClient); ok {
			sockets++
		} else {
			locals++
		}
	}

	left, right := h.match.Score()
	h.logger.Info("debug",
		"cloud", h.cloud,
		"heap", stats.HeapInuse/1e6,
		"nextGC", stats.NextGC/1e6,
		"sockets", sockets,
		"locals", locals,
		"tick", h.match.Ticks(),
		"score", [2]int{left, right},
		"states", h.match.Teams[0].State().String()+"/"+h.match.Teams[1].State().String(),
	)

	// Function benchmarks
	var totalDuration time.Duration
	var benches strings.Builder
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration

		benches.WriteString(bench.name)
		benches.WriteString(": ")
		benches.WriteString(duration.String())
		benches.WriteString(", ")
	}
	h.logger.Debug("benches", "averages", benches.String(), "total", totalDuration)

	if err := AppendLog("/tmp/soccer.log", []interface{}{
		unixMillis(),
		sockets,
		locals,
		left,
		right,
		float64(totalDuration) / float64(time.Millisecond),
	}); err != nil {
		h.logger.Debug("append log", "err", err)
	}
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
