package strdeque

import (
	"math"
	"testing"

	"strdeque/internal/common/errors"
)

// recordingSink 记录所有 exit 事件
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Report(e Event) {
	if e.Phase == PhaseExit {
		s.events = append(s.events, e)
	}
}

func (s *recordingSink) last() Event {
	return s.events[len(s.events)-1]
}

func TestNew_InstallsEmptyDeque(t *testing.T) {
	reg := New()

	if !reg.Exists(Empty) {
		t.Error("句柄 0 应该始终存在")
	}
	if reg.Size(Empty) != 0 {
		t.Errorf("空序列长度应该为 0，实际为 %d", reg.Size(Empty))
	}
	if reg.Len() != 1 {
		t.Errorf("新注册表应该只包含空序列，实际数量: %d", reg.Len())
	}
	if reg.EmptyHandle() != Empty {
		t.Errorf("EmptyHandle 应该返回 0，实际为 %d", reg.EmptyHandle())
	}
}

func TestNew_ReportsInit(t *testing.T) {
	sink := &recordingSink{}
	New(WithSink(sink))

	if len(sink.events) != 1 || sink.events[0].Op != OpInit {
		t.Fatalf("期望一个初始化事件，实际为: %+v", sink.events)
	}
}

func TestCreate_FreshHandles(t *testing.T) {
	reg := New()

	h1 := reg.Create()
	h2 := reg.Create()

	if h1 == Empty || h2 == Empty {
		t.Fatalf("新句柄不能为 0: %d, %d", h1, h2)
	}
	if h1 == h2 {
		t.Fatalf("连续创建的句柄应该不同: %d", h1)
	}
	if h2 <= h1 {
		t.Errorf("句柄应该严格递增: %d 之后是 %d", h1, h2)
	}
	if reg.Size(h1) != 0 {
		t.Errorf("新序列应该为空，实际长度: %d", reg.Size(h1))
	}
}

func TestCreate_NeverReusesDeletedHandles(t *testing.T) {
	reg := New()

	h1 := reg.Create()
	reg.Delete(h1)
	h2 := reg.Create()

	if h2 == h1 {
		t.Errorf("删除的句柄 %d 不应该被重新使用", h1)
	}
	if reg.Created() != 2 {
		t.Errorf("期望已分配句柄数为 2，实际为 %d", reg.Created())
	}
	if reg.Len() != 2 {
		t.Errorf("期望存在的序列数为 2，实际为 %d", reg.Len())
	}
}

func TestCreate_PanicsWhenHandleSpaceExhausted(t *testing.T) {
	reg := New()
	reg.last = math.MaxUint64

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("句柄空间耗尽时应该 panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("期望 panic 值为 error，实际为 %T", r)
		}
		if !errors.IsErrorCode(err, errors.ErrCodeHandleSpaceExhausted) {
			t.Errorf("期望错误代码为 %s，实际为 %s", errors.ErrCodeHandleSpaceExhausted, errors.GetErrorCode(err))
		}
		if reg.Len() != 1 {
			t.Errorf("耗尽时不应该创建新序列，实际数量: %d", reg.Len())
		}
	}()

	reg.Create()
}

func TestEmptyDeque_IsImmutable(t *testing.T) {
	sink := &recordingSink{}
	reg := New(WithSink(sink))

	reg.InsertAt(Empty, 0, "x")
	if sink.last().Outcome != OutcomeProtected {
		t.Errorf("向空序列插入应该被拒绝，实际结果: %s", sink.last().Outcome)
	}
	reg.RemoveAt(Empty, 0)
	if sink.last().Outcome != OutcomeProtected {
		t.Errorf("从空序列删除应该被拒绝，实际结果: %s", sink.last().Outcome)
	}
	reg.Clear(Empty)
	if sink.last().Outcome != OutcomeProtected {
		t.Errorf("清空空序列应该被拒绝，实际结果: %s", sink.last().Outcome)
	}
	reg.Delete(Empty)
	if sink.last().Outcome != OutcomeProtected {
		t.Errorf("删除空序列应该被拒绝，实际结果: %s", sink.last().Outcome)
	}

	if reg.Size(Empty) != 0 {
		t.Errorf("空序列长度应该保持为 0，实际为 %d", reg.Size(Empty))
	}
	if !reg.Exists(Empty) {
		t.Error("删除后空序列应该仍然存在")
	}
}

func TestUnknownHandle_FailsSoft(t *testing.T) {
	sink := &recordingSink{}
	reg := New(WithSink(sink))
	deleted := reg.Create()
	reg.InsertAt(deleted, 0, "x")
	reg.Delete(deleted)

	for _, h := range []Handle{deleted, 999} {
		if n := reg.Size(h); n != 0 {
			t.Errorf("不存在的句柄 %d 长度应该为 0，实际为 %d", h, n)
		}
		if sink.last().Outcome != OutcomeUnknownHandle {
			t.Errorf("期望诊断结果为 unknown_handle，实际为 %s", sink.last().Outcome)
		}
		if _, ok := reg.GetAt(h, 0); ok {
			t.Errorf("不存在的句柄 %d 不应该返回元素", h)
		}
		reg.Delete(h)
		reg.Clear(h)
		reg.InsertAt(h, 0, "y")
		reg.RemoveAt(h, 0)
		if sink.last().Outcome != OutcomeUnknownHandle {
			t.Errorf("期望诊断结果为 unknown_handle，实际为 %s", sink.last().Outcome)
		}
		if reg.Exists(h) {
			t.Errorf("句柄 %d 不应该存在", h)
		}
	}

	if reg.Len() != 1 {
		t.Errorf("对不存在句柄的操作不应该创建序列，实际数量: %d", reg.Len())
	}
}

func TestInsertAt_OrderAndClamp(t *testing.T) {
	reg := New()
	h := reg.Create()

	reg.InsertAt(h, 0, "b")
	reg.InsertAt(h, 0, "a")
	reg.InsertAt(h, reg.Size(h)+100, "d")
	reg.InsertAt(h, 2, "c")

	got, _ := reg.Snapshot(h)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("期望序列为 %v，实际为 %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("位置 %d 期望为 %q，实际为 %q", i, want[i], got[i])
		}
	}
}

func TestInsertAt_AllowsDuplicatesAndEmptyStrings(t *testing.T) {
	reg := New()
	h := reg.Create()

	reg.InsertAt(h, 0, "")
	reg.InsertAt(h, 1, "")
	reg.InsertAt(h, 2, "x")
	reg.InsertAt(h, 3, "x")

	if reg.Size(h) != 4 {
		t.Errorf("期望长度为 4，实际为 %d", reg.Size(h))
	}
}

func TestInsertAtNullable_NilIsNoop(t *testing.T) {
	sink := &recordingSink{}
	reg := New(WithSink(sink))
	h := reg.Create()

	reg.InsertAtNullable(h, 0, nil)

	if reg.Size(h) != 0 {
		t.Errorf("插入空值不应该改变序列，实际长度: %d", reg.Size(h))
	}
	inserted := sink.events[len(sink.events)-2]
	if inserted.Outcome != OutcomeNilValue {
		t.Errorf("期望诊断结果为 nil_value，实际为 %s", inserted.Outcome)
	}

	v := "x"
	reg.InsertAtNullable(h, 0, &v)
	if got, _ := reg.GetAt(h, 0); got != "x" {
		t.Errorf("期望插入 %q，实际为 %q", "x", got)
	}
}

func TestInsertAt_ProtectedCheckedBeforeNil(t *testing.T) {
	sink := &recordingSink{}
	reg := New(WithSink(sink))

	reg.InsertAtNullable(Empty, 0, nil)
	if sink.last().Outcome != OutcomeProtected {
		t.Errorf("期望诊断结果为 protected，实际为 %s", sink.last().Outcome)
	}

	reg.InsertAtNullable(42, 0, nil)
	if sink.last().Outcome != OutcomeUnknownHandle {
		t.Errorf("期望诊断结果为 unknown_handle，实际为 %s", sink.last().Outcome)
	}
}

func TestInsertAt_NegativePositionIsNoop(t *testing.T) {
	reg := New()
	h := reg.Create()

	reg.InsertAt(h, -1, "x")

	if reg.Size(h) != 0 {
		t.Errorf("负数位置不应该插入，实际长度: %d", reg.Size(h))
	}
}

func TestInsertRemove_Inverse(t *testing.T) {
	reg := New()
	h := reg.Create()

	reg.InsertAt(h, 0, "x")
	reg.RemoveAt(h, 0)

	if reg.Size(h) != 0 {
		t.Errorf("插入后删除应该恢复为空，实际长度: %d", reg.Size(h))
	}
}

func TestBounds_RemoveAndGetAreStrict(t *testing.T) {
	sink := &recordingSink{}
	reg := New(WithSink(sink))
	h := reg.Create()
	reg.InsertAt(h, 0, "a")
	reg.InsertAt(h, 1, "b")

	if _, ok := reg.GetAt(h, reg.Size(h)); ok {
		t.Error("GetAt(size) 应该返回不存在")
	}
	if sink.last().Outcome != OutcomeOutOfRange {
		t.Errorf("期望诊断结果为 out_of_range，实际为 %s", sink.last().Outcome)
	}
	if _, ok := reg.GetAt(h, -1); ok {
		t.Error("GetAt(-1) 应该返回不存在")
	}

	reg.RemoveAt(h, reg.Size(h))
	reg.RemoveAt(h, -1)
	if reg.Size(h) != 2 {
		t.Errorf("越界删除不应该改变序列，实际长度: %d", reg.Size(h))
	}

	reg.RemoveAt(h, 0)
	if got, _ := reg.GetAt(h, 0); got != "b" {
		t.Errorf("删除首元素后期望为 %q，实际为 %q", "b", got)
	}
}

func TestGetAt_ReturnsIndependentValue(t *testing.T) {
	reg := New()
	h := reg.Create()
	reg.InsertAt(h, 0, "keep")

	v, ok := reg.GetAt(h, 0)
	if !ok {
		t.Fatal("期望能读取元素")
	}

	reg.Clear(h)
	reg.InsertAt(h, 0, "other")

	if v != "keep" {
		t.Errorf("已返回的值不应该被后续修改影响，实际为 %q", v)
	}
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	reg := New()
	h := reg.Create()
	reg.InsertAt(h, 0, "a")

	snap, _ := reg.Snapshot(h)
	snap[0] = "mutated"

	if got, _ := reg.GetAt(h, 0); got != "a" {
		t.Errorf("修改快照不应该影响注册表，实际为 %q", got)
	}
	if _, ok := reg.Snapshot(77); ok {
		t.Error("不存在的句柄不应该有快照")
	}
}

func TestClear(t *testing.T) {
	reg := New()
	h := reg.Create()
	reg.InsertAt(h, 0, "a")
	reg.InsertAt(h, 0, "b")

	reg.Clear(h)

	if reg.Size(h) != 0 {
		t.Errorf("清空后长度应该为 0，实际为 %d", reg.Size(h))
	}
	if !reg.Exists(h) {
		t.Error("清空不应该删除句柄")
	}
}

func TestCompare(t *testing.T) {
	reg := New()
	seq := func(values ...string) Handle {
		h := reg.Create()
		for i, v := range values {
			reg.InsertAt(h, i, v)
		}
		return h
	}

	testCases := []struct {
		name string
		a, b Handle
		want int
	}{
		{"非空与保留句柄", seq("a"), Empty, 1},
		{"前缀较小", seq("a"), seq("a", "b"), -1},
		{"逐元素比较", seq("a", "z"), seq("b"), -1},
		{"元素内按字节比较", seq("ab"), seq("b"), -1},
		{"大小写按字节序", seq("B"), seq("a"), -1},
		{"相等序列", seq("x", "y"), seq("x", "y"), 0},
		{"空串小于非空串", seq(""), seq("a"), -1},
		{"非空大于空", seq("a"), seq(), 1},
		{"两个空序列", seq(), seq(), 0},
		{"空序列与保留句柄", seq(), Empty, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.Compare(tc.a, tc.b); got != tc.want {
				t.Errorf("Compare(%d, %d) 期望为 %d，实际为 %d", tc.a, tc.b, tc.want, got)
			}
			if got := reg.Compare(tc.b, tc.a); got != -tc.want {
				t.Errorf("Compare(%d, %d) 期望为 %d，实际为 %d", tc.b, tc.a, -tc.want, got)
			}
		})
	}
}

func TestCompare_UnknownHandleActsAsEmpty(t *testing.T) {
	sink := &recordingSink{}
	reg := New(WithSink(sink))
	h := reg.Create()
	reg.InsertAt(h, 0, "a")

	if got := reg.Compare(999, Empty); got != 0 {
		t.Errorf("不存在的句柄应该等同于空序列，实际结果: %d", got)
	}
	if sink.last().Outcome != OutcomeUnknownHandle {
		t.Errorf("期望诊断结果为 unknown_handle，实际为 %s", sink.last().Outcome)
	}
	if got := reg.Compare(998, 999); got != 0 {
		t.Errorf("两个不存在的句柄应该相等，实际结果: %d", got)
	}
	if got := reg.Compare(h, 999); got != 1 {
		t.Errorf("非空序列应该大于不存在的句柄，实际结果: %d", got)
	}
	if got := reg.Compare(999, h); got != -1 {
		t.Errorf("不存在的句柄应该小于非空序列，实际结果: %d", got)
	}
}

func TestScenario_InsertThenCompare(t *testing.T) {
	reg := New()

	h1 := reg.Create()
	reg.InsertAt(h1, 0, "b")
	reg.InsertAt(h1, 0, "a")

	if reg.Size(h1) != 2 {
		t.Errorf("期望长度为 2，实际为 %d", reg.Size(h1))
	}
	if v, _ := reg.GetAt(h1, 0); v != "a" {
		t.Errorf("期望首元素为 %q，实际为 %q", "a", v)
	}

	h2 := reg.Create()
	if got := reg.Compare(h1, h2); got != 1 {
		t.Errorf("非空序列应该大于空序列，实际结果: %d", got)
	}
}

func TestSink_EnterAndExitEvents(t *testing.T) {
	var events []Event
	reg := New(WithSink(SinkFunc(func(e Event) { events = append(events, e) })))
	events = nil

	h := reg.Create()
	reg.InsertAt(h, 5, "v")

	if len(events) != 4 {
		t.Fatalf("期望 4 个事件，实际为 %d", len(events))
	}
	if events[0].Phase != PhaseEnter || events[1].Phase != PhaseExit {
		t.Errorf("事件应该成对出现: %s, %s", events[0].Phase, events[1].Phase)
	}
	if events[1].Handle != h {
		t.Errorf("创建事件应该携带新句柄 %d，实际为 %d", h, events[1].Handle)
	}
	insert := events[3]
	if insert.Op != OpInsert || insert.Outcome != OutcomeOK {
		t.Errorf("期望插入成功事件，实际为 %s/%s", insert.Op, insert.Outcome)
	}
	if insert.Fields[0].Key != "index" || insert.Fields[0].Value != 0 {
		t.Errorf("插入位置应该被截断为 0，实际字段: %+v", insert.Fields)
	}
	if insert.Message != `deque 1 - element "v" inserted at 0` {
		t.Errorf("诊断消息不符合预期: %s", insert.Message)
	}
}

func TestSink_DoesNotChangeResults(t *testing.T) {
	run := func(reg *Registry) []int {
		h := reg.Create()
		reg.InsertAt(h, 0, "a")
		reg.InsertAt(h, 9, "b")
		reg.RemoveAt(h, 7)
		reg.InsertAt(Empty, 0, "z")
		return []int{reg.Size(h), reg.Size(Empty), reg.Compare(h, Empty), reg.Compare(404, h)}
	}

	quiet := run(New())
	noisy := run(New(WithSink(&recordingSink{})))

	for i := range quiet {
		if quiet[i] != noisy[i] {
			t.Errorf("诊断输出不应该影响结果: %v vs %v", quiet, noisy)
			break
		}
	}
}

func TestHandles_Sorted(t *testing.T) {
	reg := New()
	h1 := reg.Create()
	h2 := reg.Create()
	h3 := reg.Create()
	reg.Delete(h2)
	reg.InsertAt(h1, 0, "a")
	reg.InsertAt(h3, 0, "b")
	reg.InsertAt(h3, 0, "c")

	got := reg.Handles()
	want := []Handle{Empty, h1, h3}
	if len(got) != len(want) {
		t.Fatalf("期望句柄为 %v，实际为 %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("期望句柄为 %v，实际为 %v", want, got)
			break
		}
	}
	if reg.Elements() != 3 {
		t.Errorf("期望元素总数为 3，实际为 %d", reg.Elements())
	}
}

func TestHandle_String(t *testing.T) {
	if Empty.String() != "the Empty Deque" {
		t.Errorf("空序列名称不符合预期: %s", Empty.String())
	}
	if Handle(7).String() != "deque 7" {
		t.Errorf("序列名称不符合预期: %s", Handle(7).String())
	}
	if !Empty.IsEmptyDeque() || Handle(1).IsEmptyDeque() {
		t.Error("IsEmptyDeque 判断错误")
	}
}
