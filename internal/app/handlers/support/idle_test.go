package support

import (
	"testing"
	"time"
)

type counter struct{ n int }

func TestIdleMapEvictsIdleEntries(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewIdleMap[counter](time.Minute, 0)
	m.SetClock(func() time.Time { return now })

	m.Touch("a").n = 1
	if v, ok := m.Get("a"); !ok || v.n != 1 {
		t.Fatalf("expected live entry, got %+v %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := m.Get("a"); ok {
		t.Fatal("idle entry must be dropped")
	}
	if v := m.Touch("a"); v.n != 0 {
		t.Fatalf("expired entry must come back as a fresh value, got %+v", v)
	}
}

func TestIdleMapSweepsOnInsert(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewIdleMap[counter](time.Minute, 0)
	m.SetClock(func() time.Time { return now })
	for _, k := range []string{"a", "b", "c"} {
		m.Touch(k)
	}
	now = now.Add(2 * time.Minute)
	m.Touch("d")
	if n := m.Len(); n != 1 {
		t.Fatalf("len = %d, want only the new entry", n)
	}
}

func TestIdleMapCapacityDropsLeastRecentlySeen(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewIdleMap[counter](time.Hour, 2)
	m.SetClock(func() time.Time { return now })

	m.Touch("a")
	now = now.Add(time.Second)
	m.Touch("b")
	now = now.Add(time.Second)
	m.Get("a")
	now = now.Add(time.Second)
	m.Touch("c")

	if m.Len() != 2 {
		t.Fatalf("len = %d", m.Len())
	}
	if _, ok := m.Get("b"); ok {
		t.Fatal("least recently seen entry must be dropped")
	}
	if _, ok := m.Get("a"); !ok {
		t.Fatal("recently read entry must survive")
	}
}
