// bus/bus_test.go
package bus

import (
	"sort"
	"testing"
	"time"
)

func expectOneOf(t *testing.T, s *Subscription, want string) {
	t.Helper()
	select {
	case got := <-s.Channel():
		if got.Payload.(string) != want {
			t.Errorf("expected payload %q, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func expectNoMessage(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case got := <-s.Channel():
		t.Errorf("unexpected message: %v", got.Payload)
	case <-time.After(20 * time.Millisecond):
	}
}

func drainPayloads(t *testing.T, s *Subscription, n int) []string {
	t.Helper()
	var got []string
	for i := 0; i < n; i++ {
		select {
		case m := <-s.Channel():
			got = append(got, m.Payload.(string))
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timeout after %d of %d messages", i, n)
		}
	}
	return got
}

func assertUnorderedEqual(t *testing.T, got, want []string) {
	t.Helper()
	g := append([]string(nil), got...)
	w := append([]string(nil), want...)
	sort.Strings(g)
	sort.Strings(w)
	if len(g) != len(w) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("net", "state"))

	conn.Publish(conn.NewMessage(T("net", "state"), "connected", false))
	expectOneOf(t, sub, "connected")
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("net", "state"), "connected", true))

	// Late subscriber still sees the last state.
	sub := conn.Subscribe(T("net", "state"))
	expectOneOf(t, sub, "connected")
}

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("a", "+", "c"))
	s2 := c.Subscribe(T("a", "+", "+"))
	s3 := c.Subscribe(T("a", "b", "+"))
	sNo := c.Subscribe(T("a", "+", "d"))

	c.Publish(b.NewMessage(T("a", "b", "c"), "m1", false))

	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectOneOf(t, s3, "m1")
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("a", "x", "y"), "m2", false))

	expectOneOf(t, s2, "m2")
	expectNoMessage(t, s1)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("a", "c"), "m3", false))
	expectNoMessage(t, s1)
	expectNoMessage(t, s2)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)
}

func TestWildcard_MultiLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	sAHash := c.Subscribe(T("a", "#"))
	sHash := c.Subscribe(T("#"))
	sABHash := c.Subscribe(T("a", "b", "#"))
	sAExact := c.Subscribe(T("a"))

	c.Publish(b.NewMessage(T("a"), "p1", false))
	expectOneOf(t, sAHash, "p1")
	expectOneOf(t, sHash, "p1")
	expectOneOf(t, sAExact, "p1")
	expectNoMessage(t, sABHash)

	c.Publish(b.NewMessage(T("a", "b"), "p2", false))
	expectOneOf(t, sAHash, "p2")
	expectOneOf(t, sHash, "p2")
	expectOneOf(t, sABHash, "p2")
	expectNoMessage(t, sAExact)

	c.Publish(b.NewMessage(T("a", "b", "c"), "p3", false))
	expectOneOf(t, sAHash, "p3")
	expectOneOf(t, sHash, "p3")
	expectOneOf(t, sABHash, "p3")
	expectNoMessage(t, sAExact)
}

func TestWildcard_RetainedDelivery(t *testing.T) {
	b := NewBus(32)
	c := b.NewConnection("test")

	c.Publish(b.NewMessage(T("a"), "r0", true))
	c.Publish(b.NewMessage(T("a", "b"), "r1", true))
	c.Publish(b.NewMessage(T("a", "b", "c"), "r2", true))
	c.Publish(b.NewMessage(T("a", "x"), "r3", true))

	sAll := c.Subscribe(T("a", "#"))
	assertUnorderedEqual(t, drainPayloads(t, sAll, 4), []string{"r0", "r1", "r2", "r3"})

	sPlusHash := c.Subscribe(T("a", "+", "#"))
	assertUnorderedEqual(t, drainPayloads(t, sPlusHash, 3), []string{"r1", "r2", "r3"})

	sPlus := c.Subscribe(T("a", "+"))
	assertUnorderedEqual(t, drainPayloads(t, sPlus, 2), []string{"r1", "r3"})
}

func TestWildcard_RetainedClear(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	c.Publish(b.NewMessage(T("a", "b"), "gone", true))
	c.Publish(b.NewMessage(T("a", "y"), "other", true))

	// nil payload clears the retained slot.
	c.Publish(b.NewMessage(T("a", "b"), nil, true))

	s := c.Subscribe(T("a", "#"))
	got := drainPayloads(t, s, 1)
	if got[0] != "other" {
		t.Fatalf("got %v, want [other]", got)
	}
	expectNoMessage(t, s)
}

func TestQueueDropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")
	s := c.Subscribe(T("q"))

	c.Publish(b.NewMessage(T("q"), "m1", false))
	c.Publish(b.NewMessage(T("q"), "m2", false))
	c.Publish(b.NewMessage(T("q"), "m3", false)) // pushes m1 out

	assertUnorderedEqual(t, drainPayloads(t, s, 2), []string{"m2", "m3"})
	expectNoMessage(t, s)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	s := c.Subscribe(T("net", "state"))
	s.Unsubscribe()

	// Channel is closed; publish must not panic or deliver.
	c.Publish(b.NewMessage(T("net", "state"), "late", false))
	if m, ok := <-s.Channel(); ok {
		t.Fatalf("received on closed subscription: %v", m.Payload)
	}
}

func TestConnectionDisconnect(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("svc")
	s1 := c.Subscribe(T("a"))
	s2 := c.Subscribe(T("b"))
	c.Disconnect()

	if _, ok := <-s1.Channel(); ok {
		t.Fatal("s1 still open")
	}
	if _, ok := <-s2.Channel(); ok {
		t.Fatal("s2 still open")
	}
}
