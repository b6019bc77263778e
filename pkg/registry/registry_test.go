package registry

import (
	"errors"
	"testing"
)

type testItem struct {
	id, name, typ string
}

func (i testItem) ID() string   { return i.id }
func (i testItem) Name() string { return i.name }
func (i testItem) Type() string { return i.typ }

func TestBaseRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry[testItem]()

	if err := reg.Register(testItem{"size", "size H", "reader"}); err != nil {
		t.Fatalf("注册项目时发生错误: %v", err)
	}

	item, ok := reg.Get("size")
	if !ok {
		t.Fatal("期望能获取已注册的项目")
	}
	if item.Name() != "size H" {
		t.Errorf("期望名称为 'size H'，实际为 '%s'", item.Name())
	}
	if reg.Count() != 1 {
		t.Errorf("期望项目数量为1，实际为: %d", reg.Count())
	}
}

func TestBaseRegistry_RejectsDuplicateAndEmpty(t *testing.T) {
	reg := NewRegistry[testItem]()
	reg.Register(testItem{id: "new"})

	if err := reg.Register(testItem{id: "new"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("重复注册应该返回 ErrDuplicate，实际为: %v", err)
	}
	if err := reg.Register(testItem{}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("空ID应该返回 ErrEmptyID，实际为: %v", err)
	}
}

func TestBaseRegistry_ListIsSorted(t *testing.T) {
	reg := NewRegistry[testItem]()
	MustRegister(reg,
		testItem{"remove", "", "mutator"},
		testItem{"comp", "", "reader"},
		testItem{"insert", "", "mutator"},
	)

	var ids []string
	for _, item := range reg.List() {
		ids = append(ids, item.ID())
	}
	if len(ids) != 3 || ids[0] != "comp" || ids[1] != "insert" || ids[2] != "remove" {
		t.Errorf("期望按ID排序，实际为 %v", ids)
	}

	mutators := reg.GetByType("mutator")
	if len(mutators) != 2 || mutators[0].ID() != "insert" {
		t.Errorf("期望两个按序排列的 mutator，实际为 %v", mutators)
	}
}

func TestBaseRegistry_UpdateRemoveClear(t *testing.T) {
	reg := NewRegistry[testItem]()
	reg.Register(testItem{"get", "old", "reader"})

	if !reg.Update(testItem{"get", "new", "reader"}) {
		t.Error("更新已存在的项目应该成功")
	}
	if reg.Update(testItem{"missing", "", ""}) {
		t.Error("更新不存在的项目应该失败")
	}
	if item, _ := reg.Get("get"); item.Name() != "new" {
		t.Errorf("期望名称为 'new'，实际为 '%s'", item.Name())
	}

	if !reg.Remove("get") || reg.Remove("get") {
		t.Error("Remove 只应该在项目存在时返回 true")
	}
	if reg.Contains("get") {
		t.Error("移除后不应该存在")
	}

	reg.Register(testItem{id: "a"})
	reg.Clear()
	if reg.Count() != 0 {
		t.Errorf("清空后数量应该为0，实际为 %d", reg.Count())
	}
}

func TestMustRegister_PanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry[testItem]()
	defer func() {
		if recover() == nil {
			t.Error("重复注册应该 panic")
		}
	}()
	MustRegister(reg, testItem{id: "x"}, testItem{id: "x"})
}
