// Package diag 提供注册表诊断事件的输出实现：日志、链路追踪、扇出和内存记录
package diag

import (
	"sync"

	"strdeque/internal/strdeque"
)

// Multi 把事件依次转发给多个 Sink
func Multi(sinks ...strdeque.Sink) strdeque.Sink {
	filtered := make([]strdeque.Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil && s != strdeque.Discard {
			filtered = append(filtered, s)
		}
	}
	switch len(filtered) {
	case 0:
		return strdeque.Discard
	case 1:
		return filtered[0]
	}
	return multiSink(filtered)
}

type multiSink []strdeque.Sink

func (m multiSink) Report(e strdeque.Event) {
	for _, s := range m {
		s.Report(e)
	}
}

// Recorder 在内存中保存 exit 事件，供测试和交互界面使用
type Recorder struct {
	mu     sync.Mutex
	events []strdeque.Event
	limit  int
}

// NewRecorder 创建记录器，limit 为 0 表示不限制条数
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Report 实现 strdeque.Sink
func (r *Recorder) Report(e strdeque.Event) {
	if e.Phase != strdeque.PhaseExit {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	if r.limit > 0 && len(r.events) > r.limit {
		r.events = append(r.events[:0:0], r.events[len(r.events)-r.limit:]...)
	}
}

// Events 返回已记录事件的副本
func (r *Recorder) Events() []strdeque.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]strdeque.Event(nil), r.events...)
}

// Last 返回最后一个事件
func (r *Recorder) Last() (strdeque.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == 0 {
		return strdeque.Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
