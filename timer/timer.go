// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

// Scheduler runs callbacks after a delay, optionally repeating every interval. Handles are
// positive; zero is never returned and RemoveTimer(0) is a no-op.
type Scheduler interface {
	AddTimer(delay time.Duration, interval time.Duration, callback func()) int64
	RemoveTimer(timerId int64)
}

// Dispatcher hands a due callback to whoever owns the state it touches.
type Dispatcher func(fn func())

type TimerTask struct {
	Id       int64
	Execute  time.Time
	Interval time.Duration
	Callback func()
	index    int
}

type TimerQueue []*TimerTask

func (q TimerQueue) Len() int { return len(q) }

func (q TimerQueue) Less(i, j int) bool {
	if q[i].Execute.Equal(q[j].Execute) {
		return q[i].Id < q[j].Id
	}
	return q[i].Execute.Before(q[j].Execute)
}

func (q TimerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *TimerQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*TimerTask)
	task.index = n
	*q = append(*q, task)
}

func (q *TimerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// TimerManager is a heap of tasks polled at a fixed resolution. Due callbacks go through the
// dispatcher; a task removed after it fired but before the dispatched callback runs is skipped.
type TimerManager struct {
	queue      TimerQueue
	live       map[int64]*TimerTask
	mutex      sync.Mutex
	nextId     int64
	resolution time.Duration
	dispatch   Dispatcher
	stop       chan struct{}
	stopOnce   sync.Once
}

func NewTimerManager(resolution time.Duration, dispatch Dispatcher) *TimerManager {
	if resolution <= 0 {
		resolution = 10 * time.Millisecond
	}
	if dispatch == nil {
		dispatch = func(fn func()) { go fn() }
	}
	manager := &TimerManager{
		queue:      make(TimerQueue, 0),
		live:       make(map[int64]*TimerTask),
		nextId:     1,
		resolution: resolution,
		dispatch:   dispatch,
		stop:       make(chan struct{}),
	}
	heap.Init(&manager.queue)
	go manager.process()
	return manager
}

func (m *TimerManager) AddTimer(delay time.Duration, interval time.Duration, callback func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task := &TimerTask{
		Id:       m.nextId,
		Execute:  time.Now().Add(delay),
		Interval: interval,
		Callback: callback,
	}
	m.nextId++

	heap.Push(&m.queue, task)
	m.live[task.Id] = task
	return task.Id
}

func (m *TimerManager) RemoveTimer(timerId int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task, ok := m.live[timerId]
	if !ok {
		return
	}
	delete(m.live, timerId)
	if task.index >= 0 && task.index < len(m.queue) && m.queue[task.index] == task {
		heap.Remove(&m.queue, task.index)
	}
}

// Pending returns the number of scheduled, uncancelled tasks.
func (m *TimerManager) Pending() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.live)
}

// Stop ends the polling goroutine. Pending tasks never fire.
func (m *TimerManager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *TimerManager) process() {
	ticker := time.NewTicker(m.resolution)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			for _, task := range m.due(now) {
				m.dispatch(m.guarded(task))
			}
		}
	}
}

func (m *TimerManager) due(now time.Time) []*TimerTask {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var fired []*TimerTask
	for m.queue.Len() > 0 {
		task := m.queue[0]
		if task.Execute.After(now) {
			break
		}

		heap.Pop(&m.queue)
		fired = append(fired, task)

		if task.Interval > 0 {
			task.Execute = task.Execute.Add(task.Interval)
			if task.Execute.Before(now) {
				task.Execute = now.Add(task.Interval)
			}
			heap.Push(&m.queue, task)
		}
	}
	return fired
}

func (m *TimerManager) guarded(task *TimerTask) func() {
	return func() {
		m.mutex.Lock()
		_, alive := m.live[task.Id]
		if alive && task.Interval <= 0 {
			delete(m.live, task.Id)
		}
		m.mutex.Unlock()

		if alive {
			task.Callback()
		}
	}
}
