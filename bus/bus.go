// bus.go
package bus

import (
	"sync"

	"stationboard-go/x/timex"
)

// Wildcard tokens, MQTT-style. "+" matches exactly one token,
// "#" matches any remaining tokens (including none).
const (
	WildOne  = "+"
	WildRest = "#"
)

// Topic is a sequence of string tokens.
type Topic []string

// T builds a topic from tokens.
func T(tokens ...string) Topic { return Topic(tokens) }

// -----------------------------------------------------------------------------
// Message
// -----------------------------------------------------------------------------

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	TsMs     int64
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection // owning connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Trie node
// -----------------------------------------------------------------------------

// One trie holds both subscription patterns (wildcards sit in it as literal
// keys) and retained messages (stored at concrete paths only).
type node struct {
	children map[string]*node
	subs     []*Subscription
	retained *Message
}

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu   sync.RWMutex
	root *node
	qLen int
}

// NewBus creates a new bus with the given subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		root: &node{},
		qLen: queueLen,
	}
}

// NewMessage stamps a message with the current time.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained, TsMs: timex.NowMs()}
}

// deliver enqueues without blocking; on a full queue the oldest message is
// dropped in favour of the new one.
func deliver(sub *Subscription, msg *Message) {
	select {
	case sub.ch <- msg:
	default:
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

// addSubscription inserts a subscription into the trie and replays any
// retained messages matching its pattern.
func (b *Bus) addSubscription(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	for _, tok := range topic {
		if n.children == nil {
			n.children = make(map[string]*node)
		}
		child, ok := n.children[tok]
		if !ok {
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	n.subs = append(n.subs, sub)

	b.replayRetained(b.root, topic, sub)
}

// replayRetained walks concrete topic nodes matching pattern and delivers
// their retained messages to sub.
func (b *Bus) replayRetained(n *node, pattern Topic, sub *Subscription) {
	if n == nil {
		return
	}
	if len(pattern) == 0 {
		if n.retained != nil {
			deliver(sub, n.retained)
		}
		return
	}
	switch pattern[0] {
	case WildRest:
		b.replayAllRetained(n, sub)
	case WildOne:
		for key, child := range n.children {
			if key == WildOne || key == WildRest {
				continue
			}
			b.replayRetained(child, pattern[1:], sub)
		}
	default:
		if n.children != nil {
			b.replayRetained(n.children[pattern[0]], pattern[1:], sub)
		}
	}
}

// replayAllRetained delivers retained messages at n and every concrete node
// below it.
func (b *Bus) replayAllRetained(n *node, sub *Subscription) {
	if n.retained != nil {
		deliver(sub, n.retained)
	}
	for key, child := range n.children {
		if key == WildOne || key == WildRest {
			continue
		}
		b.replayAllRetained(child, sub)
	}
}

// Publish delivers a message to all subscribers whose pattern matches its
// topic, then stores (or clears, on nil payload) the retained copy.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.match(b.root, msg.Topic, msg)

	if !msg.Retained {
		return
	}
	n := b.root
	for _, tok := range msg.Topic {
		if n.children == nil {
			n.children = make(map[string]*node)
		}
		child, ok := n.children[tok]
		if !ok {
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	if msg.Payload == nil {
		n.retained = nil
	} else {
		n.retained = msg
	}
}

// match walks the subscription trie against a concrete topic.
func (b *Bus) match(n *node, topic Topic, msg *Message) {
	if n == nil {
		return
	}
	if n.children != nil {
		// "#" at this level swallows the rest of the topic, empty included.
		if rest, ok := n.children[WildRest]; ok {
			for _, sub := range rest.subs {
				deliver(sub, msg)
			}
		}
	}
	if len(topic) == 0 {
		for _, sub := range n.subs {
			deliver(sub, msg)
		}
		return
	}
	if n.children == nil {
		return
	}
	b.match(n.children[topic[0]], topic[1:], msg)
	b.match(n.children[WildOne], topic[1:], msg)
}

// unsubscribe removes a subscription from the trie.
func (b *Bus) unsubscribe(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	var stack []*node
	for _, t := range topic {
		if n.children == nil {
			return
		}
		child, ok := n.children[t]
		if !ok {
			return
		}
		stack = append(stack, n)
		n = child
	}

	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}

	// Prune empty nodes.
	for i := len(topic) - 1; i >= 0; i-- {
		parent := stack[i]
		key := topic[i]
		child := parent.children[key]
		if len(child.subs) == 0 && len(child.children) == 0 && child.retained == nil {
			delete(parent.children, key)
		} else {
			break
		}
	}
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

type Connection struct {
	bus  *Bus
	subs []*Subscription
	mu   sync.Mutex
	id   string // placeholder for future identity/auth
}

// NewConnection creates a new connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{
		bus: b,
		id:  id,
	}
}

// NewMessage stamps a message with the current time.
func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

// Publish sends a message via the bus.
func (c *Connection) Publish(msg *Message) {
	c.bus.Publish(msg)
}

// Subscribe registers a subscription owned by this connection.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		conn:  c,
	}
	c.bus.addSubscription(topic, sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscription owned by this connection.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub.topic, sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions and clears them.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub.topic, sub)
		close(sub.ch)
	}
}
