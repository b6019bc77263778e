package strdeque

import "testing"

func TestDefault_IsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("默认注册表应该只初始化一次")
	}
	if !Exists(EmptyHandle()) {
		t.Error("默认注册表应该包含空序列")
	}
}

func TestDefault_PackageFunctions(t *testing.T) {
	sink := &recordingSink{}
	SetSink(sink)
	defer SetSink(nil)

	h := NewDeque()
	InsertAt(h, 0, "b")
	InsertAt(h, 0, "a")
	InsertAtNullable(h, 0, nil)

	if Size(h) != 2 {
		t.Errorf("期望长度为 2，实际为 %d", Size(h))
	}
	if v, ok := GetAt(h, 0); !ok || v != "a" {
		t.Errorf("期望首元素为 %q，实际为 %q", "a", v)
	}
	if Comp(h, EmptyHandle()) != 1 {
		t.Error("非空序列应该大于空序列")
	}

	RemoveAt(h, 0)
	if v, _ := GetAt(h, 0); v != "b" {
		t.Errorf("删除后期望首元素为 %q，实际为 %q", "b", v)
	}
	Clear(h)
	if Size(h) != 0 {
		t.Errorf("清空后长度应该为 0，实际为 %d", Size(h))
	}
	Delete(h)
	if Exists(h) {
		t.Errorf("句柄 %d 删除后不应该存在", h)
	}

	if len(sink.events) == 0 {
		t.Error("SetSink 设置的诊断输出应该收到事件")
	}
}
