package timer

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by explicit Advance calls. Callbacks run synchronously on the
// caller's goroutine in due-time order, ties broken by handle.
type Manual struct {
	now    time.Duration
	nextId int64
	tasks  map[int64]*manualTask
}

type manualTask struct {
	id       int64
	due      time.Duration
	interval time.Duration
	callback func()
}

func NewManual() *Manual {
	return &Manual{nextId: 1, tasks: make(map[int64]*manualTask)}
}

func (m *Manual) AddTimer(delay time.Duration, interval time.Duration, callback func()) int64 {
	if delay < 0 {
		delay = 0
	}
	t := &manualTask{id: m.nextId, due: m.now + delay, interval: interval, callback: callback}
	m.nextId++
	m.tasks[t.id] = t
	return t.id
}

func (m *Manual) RemoveTimer(timerId int64) {
	delete(m.tasks, timerId)
}

// Now is the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) Pending() int {
	return len(m.tasks)
}

// Advance moves virtual time forward by d, firing everything that falls due on the way.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			delete(m.tasks, t.id)
		}
		t.callback()
	}
	m.now = target
}

func (m *Manual) next(limit time.Duration) *manualTask {
	var due []*manualTask
	for _, t := range m.tasks {
		if t.due <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].id < due[j].id
		}
		return due[i].due < due[j].due
	})
	return due[0]
}
