// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"fmt"
	"github.com/SoftbearStudios/soccer/server/world"
)

type MessageKind uint8

const (
	// PassToMe asks the controlling player to pass to Sender.
	PassToMe MessageKind = iota
	// ReceiveBall tells Receiver a pass toward Target is on its way.
	ReceiveBall
	SupportAttacker
	GoHome
	Wait
	messageKindCount
)

var messageKindNames = [...]string{
	PassToMe:        "passToMe",
	ReceiveBall:     "receiveBall",
	SupportAttacker: "supportAttacker",
	GoHome:          "goHome",
	Wait:            "wait",
}

func (kind MessageKind) String() string {
	if kind < messageKindCount {
		return messageKindNames[kind]
	}
	return fmt.Sprintf("message(%d)", kind)
}

type Message struct {
	Kind     MessageKind
	Sender   *Player
	Receiver *Player
	Target   world.Vec2f
}

type Handler func(Message)

// Postbox is a publish/subscribe queue. Published messages wait until Deliver, and
// anything published by a handler waits for the next Deliver.
type Postbox struct {
	queue       []Message
	subscribers [messageKindCount][]Handler
}

func NewPostbox() *Postbox {
	return &Postbox{}
}

func (postbox *Postbox) Subscribe(kind MessageKind, handler Handler) {
	postbox.subscribers[kind] = append(postbox.subscribers[kind], handler)
}

func (postbox *Postbox) Publish(message Message) {
	postbox.queue = append(postbox.queue, message)
}

// Pending returns queued messages without consuming them.
func (postbox *Postbox) Pending() []Message {
	return postbox.queue
}

// Deliver hands every queued message to its subscribers in publication order.
func (postbox *Postbox) Deliver() {
	queue := postbox.queue
	postbox.queue = nil
	for _, message := range queue {
		for _, handler := range postbox.subscribers[message.Kind] {
			handler(message)
		}
	}
}

// Clear drops queued messages.
func (postbox *Postbox) Clear() {
	postbox.queue = nil
}
