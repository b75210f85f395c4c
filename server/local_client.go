// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

// LocalClient is an in-process spectator. OnMessage is called on the hub goroutine
// with every outbound message, so it must return quickly and must not call back
// into the hub synchronously.
type LocalClient struct {
	ClientData
	OnMessage  func(message Message)
	destroying bool
}

func (local *LocalClient) Init() {}

func (local *LocalClient) Close() {}

func (local *LocalClient) Data() *ClientData {
	return &local.ClientData
}

func (local *LocalClient) Destroy() {
	if local.destroying {
		return // In case goroutine hasn't run yet
	}

	local.destroying = true
	hub := local.Hub

	// Needs to go through always.
	select {
	case hub.unregister <- local:
	default:
		go func() {
			hub.unregister <- local
		}()
	}
}

func (local *LocalClient) Send(out outbound) {
	if local.destroying || local.OnMessage == nil {
		return
	}
	local.OnMessage(Message{Data: out})
}
