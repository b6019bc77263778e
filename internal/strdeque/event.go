package strdeque

import "time"

// 操作名称，同时用作诊断输出和 MCP 工具的名称
const (
	OpInit   = "strdequeconst_init"
	OpEmpty  = "emptystrdeque"
	OpNew    = "strdeque_new"
	OpDelete = "strdeque_delete"
	OpSize   = "strdeque_size"
	OpInsert = "strdeque_insert_at"
	OpRemove = "strdeque_remove_at"
	OpGet    = "strdeque_get_at"
	OpClear  = "strdeque_clear"
	OpComp   = "strdeque_comp"
	OpExists = "strdeque_exists"
)

// Phase 事件所处阶段
type Phase string

const (
	PhaseEnter Phase = "enter"
	PhaseExit  Phase = "exit"
)

// Outcome 操作结果分类
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeProtected     Outcome = "protected"      // 试图修改空序列
	OutcomeUnknownHandle Outcome = "unknown_handle" // 句柄不存在
	OutcomeOutOfRange    Outcome = "out_of_range"   // 位置越界
	OutcomeNilValue      Outcome = "nil_value"      // 插入空值
)

// Event 是注册表向诊断通道报告的结构化事件
//
// Outcome、Message 和 Fields 只在 exit 事件中有值。
type Event struct {
	Op      string
	Phase   Phase
	Handle  Handle
	Args    []Arg
	Outcome Outcome
	Message string
	Fields  []Arg
	Start   time.Time
	At      time.Time
}

// Arg 是事件中的一个命名值
type Arg struct {
	Key   string
	Value any
}

// Sink 接收注册表的诊断事件
//
// Sink 只用于观察：它的存在与否不能影响任何操作的结果。
// Report 在注册表锁之外调用，实现可以读取注册表，但不应修改它。
type Sink interface {
	Report(e Event)
}

// SinkFunc 让普通函数实现 Sink
type SinkFunc func(e Event)

// Report 实现 Sink
func (f SinkFunc) Report(e Event) { f(e) }

type discard struct{}

func (discard) Report(Event) {}

// Discard 丢弃所有事件
var Discard Sink = discard{}
