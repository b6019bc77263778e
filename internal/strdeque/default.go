package strdeque

import "sync"

// 进程级默认注册表，首次使用时初始化
var (
	defaultOnce     sync.Once
	defaultMu       sync.Mutex
	defaultRegistry *Registry
	defaultSink     Sink = Discard
)

// Default 返回进程级默认注册表
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		defaultRegistry = New(WithSink(defaultSink))
	})
	return defaultRegistry
}

// SetSink 设置默认注册表的诊断输出，可以在初始化之前调用
func SetSink(s Sink) {
	if s == nil {
		s = Discard
	}

	defaultMu.Lock()
	defaultSink = s
	reg := defaultRegistry
	defaultMu.Unlock()

	if reg != nil {
		reg.SetSink(s)
	}
}

// EmptyHandle 返回空序列句柄
func EmptyHandle() Handle { return Default().EmptyHandle() }

// NewDeque 在默认注册表中创建序列
func NewDeque() Handle { return Default().Create() }

// Delete 删除默认注册表中的序列
func Delete(h Handle) { Default().Delete(h) }

// Size 返回默认注册表中序列的长度
func Size(h Handle) int { return Default().Size(h) }

// InsertAt 向默认注册表中的序列插入元素
func InsertAt(h Handle, pos int, value string) { Default().InsertAt(h, pos, value) }

// InsertAtNullable 向默认注册表中的序列插入可能为空的元素
func InsertAtNullable(h Handle, pos int, value *string) { Default().InsertAtNullable(h, pos, value) }

// RemoveAt 删除默认注册表中序列的元素
func RemoveAt(h Handle, pos int) { Default().RemoveAt(h, pos) }

// GetAt 读取默认注册表中序列的元素
func GetAt(h Handle, pos int) (string, bool) { return Default().GetAt(h, pos) }

// Clear 清空默认注册表中的序列
func Clear(h Handle) { Default().Clear(h) }

// Comp 比较默认注册表中的两个序列
func Comp(h1, h2 Handle) int { return Default().Compare(h1, h2) }

// Exists 判断默认注册表中句柄是否存在
func Exists(h Handle) bool { return Default().Exists(h) }
