package strdeque

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"strdeque/internal/common/errors"
)

// Registry 持有句柄到字符串序列的映射
//
// 所有操作在同一把互斥锁下串行执行；诊断事件在锁外报告。
// 零值不可用，请使用 New 创建。
type Registry struct {
	mu   sync.Mutex
	seqs map[Handle][]string
	last Handle // 最后分配的句柄，从不回收

	sink atomic.Pointer[sinkBox]
	now  func() time.Time
}

type sinkBox struct{ s Sink }

// Option 配置注册表
type Option func(*Registry)

// WithSink 设置诊断输出
func WithSink(s Sink) Option {
	return func(r *Registry) {
		r.SetSink(s)
	}
}

// WithClock 设置事件时间戳来源
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// New 创建一个新的注册表，并安装句柄 0 对应的空序列
func New(opts ...Option) *Registry {
	r := &Registry{
		seqs: map[Handle][]string{Empty: {}},
		now:  time.Now,
	}
	r.sink.Store(&sinkBox{s: Discard})
	for _, opt := range opts {
		opt(r)
	}

	c := r.begin(OpInit, Empty)
	c.end(OutcomeOK, "strdequeconst init finished")
	return r
}

// SetSink 替换诊断输出，nil 表示丢弃
func (r *Registry) SetSink(s Sink) {
	if s == nil {
		s = Discard
	}
	r.sink.Store(&sinkBox{s: s})
}

// EmptyHandle 返回保留的空序列句柄
func (r *Registry) EmptyHandle() Handle {
	c := r.begin(OpEmpty, Empty)
	c.end(OutcomeOK, Empty.String())
	return Empty
}

// Create 分配下一个句柄并为其创建空序列
//
// 句柄空间耗尽时 panic，错误代码为 HANDLE_SPACE_EXHAUSTED。
func (r *Registry) Create() Handle {
	c := r.begin(OpNew, Empty)

	r.mu.Lock()
	if r.last == math.MaxUint64 {
		last := r.last
		r.mu.Unlock()
		panic(errors.NewHandleSpaceExhaustedError(uint64(last)))
	}
	r.last++
	h := r.last
	r.seqs[h] = []string{}
	r.mu.Unlock()

	c.h = h
	c.end(OutcomeOK, fmt.Sprintf("%s created", h))
	return h
}

// Delete 删除句柄及其序列；句柄 0 和不存在的句柄不做任何事
func (r *Registry) Delete(h Handle) {
	c := r.begin(OpDelete, h)
	if h == Empty {
		c.end(OutcomeProtected, "attempt to delete the Empty Deque")
		return
	}

	r.mu.Lock()
	_, ok := r.seqs[h]
	delete(r.seqs, h)
	r.mu.Unlock()

	if !ok {
		c.end(OutcomeUnknownHandle, fmt.Sprintf("%s does not exist", h))
		return
	}
	c.end(OutcomeOK, fmt.Sprintf("%s deleted", h))
}

// Size 返回序列长度；句柄不存在时返回 0
func (r *Registry) Size(h Handle) int {
	c := r.begin(OpSize, h)

	r.mu.Lock()
	seq, ok := r.seqs[h]
	n := len(seq)
	r.mu.Unlock()

	if !ok {
		c.end(OutcomeUnknownHandle, fmt.Sprintf("%s does not exist", h))
		return 0
	}
	c.end(OutcomeOK, fmt.Sprintf("%s contains %d elements", h, n), Arg{"size", n})
	return n
}

// InsertAt 在 pos 处插入 value
//
// pos 超过序列长度时追加到末尾。句柄 0、不存在的句柄和负数位置不做任何事。
func (r *Registry) InsertAt(h Handle, pos int, value string) {
	r.insert(h, pos, &value)
}

// InsertAtNullable 与 InsertAt 相同，但 value 为 nil 时不做任何事
func (r *Registry) InsertAtNullable(h Handle, pos int, value *string) {
	r.insert(h, pos, value)
}

func (r *Registry) insert(h Handle, pos int, value *string) {
	quoted := "NULL"
	if value != nil {
		quoted = fmt.Sprintf("%q", *value)
	}
	c := r.begin(OpInsert, h, Arg{"pos", pos}, Arg{"value", quoted})

	if h == Empty {
		c.end(OutcomeProtected, "attempt to insert into the Empty Deque")
		return
	}

	r.mu.Lock()
	seq, ok := r.seqs[h]
	if !ok {
		r.mu.Unlock()
		c.end(OutcomeUnknownHandle, fmt.Sprintf("%s does not exist", h))
		return
	}
	if value == nil {
		r.mu.Unlock()
		c.end(OutcomeNilValue, fmt.Sprintf("%s - attempt to insert NULL into a deque", h))
		return
	}
	if pos < 0 {
		r.mu.Unlock()
		c.end(OutcomeOutOfRange, fmt.Sprintf("%s - invalid position %d", h, pos))
		return
	}
	at := min(pos, len(seq))
	r.seqs[h] = slices.Insert(seq, at, *value)
	r.mu.Unlock()

	c.end(OutcomeOK, fmt.Sprintf("%s - element %s inserted at %d", h, quoted, at), Arg{"index", at})
}

// RemoveAt 删除 pos 处的元素；越界、句柄 0 和不存在的句柄不做任何事
func (r *Registry) RemoveAt(h Handle, pos int) {
	c := r.begin(OpRemove, h, Arg{"pos", pos})

	if h == Empty {
		c.end(OutcomeProtected, "attempt to remove from the Empty Deque")
		return
	}

	r.mu.Lock()
	seq, ok := r.seqs[h]
	if !ok {
		r.mu.Unlock()
		c.end(OutcomeUnknownHandle, fmt.Sprintf("%s does not exist", h))
		return
	}
	if pos < 0 || pos >= len(seq) {
		r.mu.Unlock()
		c.end(OutcomeOutOfRange, fmt.Sprintf("%s does not contain an element at %d", h, pos))
		return
	}
	r.seqs[h] = slices.Delete(seq, pos, pos+1)
	r.mu.Unlock()

	c.end(OutcomeOK, fmt.Sprintf("%s - element at %d removed", h, pos))
}

// GetAt 返回 pos 处的元素
//
// 句柄不存在或位置越界时返回 "", false。Go 字符串不可变，
// 返回值不会被之后对同一序列的修改影响。
func (r *Registry) GetAt(h Handle, pos int) (string, bool) {
	c := r.begin(OpGet, h, Arg{"pos", pos})

	r.mu.Lock()
	seq, ok := r.seqs[h]
	if !ok {
		r.mu.Unlock()
		c.end(OutcomeUnknownHandle, fmt.Sprintf("%s does not exist", h))
		return "", false
	}
	if pos < 0 || pos >= len(seq) {
		r.mu.Unlock()
		c.end(OutcomeOutOfRange, fmt.Sprintf("%s does not contain an element at %d", h, pos))
		return "", false
	}
	v := seq[pos]
	r.mu.Unlock()

	c.end(OutcomeOK, fmt.Sprintf("%s - element at %d is %q", h, pos, v), Arg{"value", v})
	return v, true
}

// Clear 清空序列；句柄 0 和不存在的句柄不做任何事
func (r *Registry) Clear(h Handle) {
	c := r.begin(OpClear, h)

	if h == Empty {
		c.end(OutcomeProtected, "attempt to clear the Empty Deque")
		return
	}

	r.mu.Lock()
	_, ok := r.seqs[h]
	if ok {
		// 换成新切片以释放旧的底层数组
		r.seqs[h] = []string{}
	}
	r.mu.Unlock()

	if !ok {
		c.end(OutcomeUnknownHandle, fmt.Sprintf("%s does not exist", h))
		return
	}
	c.end(OutcomeOK, fmt.Sprintf("%s cleared", h))
}

// Compare 按字典序比较两个序列，返回 -1、0 或 1
//
// 元素按字节序比较，较短的前缀排在前面。不存在的句柄按空序列处理，两侧各自独立。
func (r *Registry) Compare(h1, h2 Handle) int {
	c := r.begin(OpComp, h1, Arg{"id1", h1}, Arg{"id2", h2})

	r.mu.Lock()
	s1, ok1 := r.seqs[h1]
	if !ok1 {
		s1 = r.seqs[Empty]
	}
	s2, ok2 := r.seqs[h2]
	if !ok2 {
		s2 = r.seqs[Empty]
	}
	result := slices.Compare(s1, s2)
	r.mu.Unlock()

	outcome := OutcomeOK
	if !ok1 || !ok2 {
		outcome = OutcomeUnknownHandle
	}
	msg := fmt.Sprintf("result of comparing %s to %s is %d", h1, h2, result)
	c.end(outcome, msg, Arg{"result", result}, Arg{"missing1", !ok1}, Arg{"missing2", !ok2})
	return result
}

// Exists 判断句柄是否存在；句柄 0 总是存在
func (r *Registry) Exists(h Handle) bool {
	c := r.begin(OpExists, h)

	r.mu.Lock()
	_, ok := r.seqs[h]
	r.mu.Unlock()

	if !ok {
		c.end(OutcomeUnknownHandle, fmt.Sprintf("%s does not exist", h))
		return false
	}
	c.end(OutcomeOK, fmt.Sprintf("%s exists", h))
	return true
}

// Snapshot 返回序列的副本；句柄不存在时返回 nil, false
func (r *Registry) Snapshot(h Handle) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq, ok := r.seqs[h]
	if !ok {
		return nil, false
	}
	return append([]string{}, seq...), true
}

// Len 返回当前存在的序列数量，包括句柄 0
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seqs)
}

// Created 返回已分配过的句柄数量
func (r *Registry) Created() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(r.last)
}

// Elements 返回所有序列的元素总数
func (r *Registry) Elements() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, seq := range r.seqs {
		total += len(seq)
	}
	return total
}

// Handles 返回当前存在的句柄，按升序排列
func (r *Registry) Handles() []Handle {
	r.mu.Lock()
	handles := make([]Handle, 0, len(r.seqs))
	for h := range r.seqs {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	slices.Sort(handles)
	return handles
}

// call 记录一次操作，负责发出 enter/exit 事件
type call struct {
	sink  Sink
	op    string
	h     Handle
	args  []Arg
	start time.Time
	now   func() time.Time
}

func (r *Registry) begin(op string, h Handle, args ...Arg) *call {
	c := &call{
		sink: r.sink.Load().s,
		op:   op,
		h:    h,
		args: args,
		now:  r.now,
	}
	if c.sink == Discard {
		return c
	}
	c.start = c.now()
	c.sink.Report(Event{
		Op:     op,
		Phase:  PhaseEnter,
		Handle: h,
		Args:   args,
		Start:  c.start,
		At:     c.start,
	})
	return c
}

func (c *call) end(outcome Outcome, msg string, fields ...Arg) {
	if c.sink == Discard {
		return
	}
	c.sink.Report(Event{
		Op:      c.op,
		Phase:   PhaseExit,
		Handle:  c.h,
		Args:    c.args,
		Outcome: outcome,
		Message: msg,
		Fields:  fields,
		Start:   c.start,
		At:      c.now(),
	})
}
