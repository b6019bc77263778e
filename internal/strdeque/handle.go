package strdeque

import "fmt"

// Handle 标识注册表中的一个序列
type Handle uint64

// Empty 是保留句柄，永久指向空序列
const Empty Handle = 0

// IsEmptyDeque 判断句柄是否为保留的空序列句柄
func (h Handle) IsEmptyDeque() bool {
	return h == Empty
}

// String 返回句柄在诊断信息中的名称
func (h Handle) String() string {
	if h == Empty {
		return "the Empty Deque"
	}
	return fmt.Sprintf("deque %d", h)
}
