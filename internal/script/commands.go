package script

import (
	"fmt"
	"strconv"
	"strings"

	"strdeque/pkg/registry"
)

// 命令分类
const (
	KindMutator = "mutator"
	KindReader  = "reader"
	KindMeta    = "meta"
)

// Absent 是读取不存在的元素时的输出
const Absent = "<absent>"

// OK 是修改类命令的输出
const OK = "ok"

// Command 描述一条脚本命令
type Command struct {
	verb    string
	usage   string
	kind    string
	summary string
	minArgs int
	maxArgs int
	run     func(s *Session, args []string) (string, error)
}

func (c *Command) ID() string { return c.verb }

func (c *Command) Name() string { return c.usage }

func (c *Command) Type() string { return c.kind }

// Summary 返回命令说明
func (c *Command) Summary() string { return c.summary }

var catalog = registry.NewRegistry[*Command]()

func init() {
	registry.MustRegister(catalog,
		&Command{verb: "new", usage: "new", kind: KindMutator, summary: "创建新序列，输出句柄",
			run: func(s *Session, _ []string) (string, error) {
				h := s.reg.Create()
				s.created = append(s.created, h)
				return strconv.FormatUint(uint64(h), 10), nil
			}},
		&Command{verb: "empty", usage: "empty", kind: KindReader, summary: "输出空序列句柄",
			run: func(s *Session, _ []string) (string, error) {
				return strconv.FormatUint(uint64(s.reg.EmptyHandle()), 10), nil
			}},
		&Command{verb: "delete", usage: "delete H", kind: KindMutator, summary: "删除序列", minArgs: 1, maxArgs: 1,
			run: func(s *Session, args []string) (string, error) {
				h, err := s.handle(args[0])
				if err != nil {
					return "", err
				}
				s.reg.Delete(h)
				return OK, nil
			}},
		&Command{verb: "size", usage: "size H", kind: KindReader, summary: "输出序列长度", minArgs: 1, maxArgs: 1,
			run: func(s *Session, args []string) (string, error) {
				h, err := s.handle(args[0])
				if err != nil {
					return "", err
				}
				return strconv.Itoa(s.reg.Size(h)), nil
			}},
		&Command{verb: "insert", usage: "insert H POS [VALUE]", kind: KindMutator,
			summary: "在 POS 处插入 VALUE，省略 VALUE 表示空值", minArgs: 2, maxArgs: 3,
			run: func(s *Session, args []string) (string, error) {
				h, pos, err := s.handleAndPos(args)
				if err != nil {
					return "", err
				}
				var value *string
				if len(args) == 3 {
					value = &args[2]
				}
				s.reg.InsertAtNullable(h, pos, value)
				return OK, nil
			}},
		&Command{verb: "remove", usage: "remove H POS", kind: KindMutator, summary: "删除 POS 处的元素", minArgs: 2, maxArgs: 2,
			run: func(s *Session, args []string) (string, error) {
				h, pos, err := s.handleAndPos(args)
				if err != nil {
					return "", err
				}
				s.reg.RemoveAt(h, pos)
				return OK, nil
			}},
		&Command{verb: "get", usage: "get H POS", kind: KindReader, summary: "输出 POS 处的元素", minArgs: 2, maxArgs: 2,
			run: func(s *Session, args []string) (string, error) {
				h, pos, err := s.handleAndPos(args)
				if err != nil {
					return "", err
				}
				v, ok := s.reg.GetAt(h, pos)
				if !ok {
					return Absent, nil
				}
				return formatValue(v), nil
			}},
		&Command{verb: "clear", usage: "clear H", kind: KindMutator, summary: "清空序列", minArgs: 1, maxArgs: 1,
			run: func(s *Session, args []string) (string, error) {
				h, err := s.handle(args[0])
				if err != nil {
					return "", err
				}
				s.reg.Clear(h)
				return OK, nil
			}},
		&Command{verb: "comp", usage: "comp H1 H2", kind: KindReader, summary: "比较两个序列，输出 -1、0 或 1", minArgs: 2, maxArgs: 2,
			run: func(s *Session, args []string) (string, error) {
				h1, err := s.handle(args[0])
				if err != nil {
					return "", err
				}
				h2, err := s.handle(args[1])
				if err != nil {
					return "", err
				}
				return strconv.Itoa(s.reg.Compare(h1, h2)), nil
			}},
		&Command{verb: "exists", usage: "exists H", kind: KindReader, summary: "判断句柄是否存在", minArgs: 1, maxArgs: 1,
			run: func(s *Session, args []string) (string, error) {
				h, err := s.handle(args[0])
				if err != nil {
					return "", err
				}
				return strconv.FormatBool(s.reg.Exists(h)), nil
			}},
		&Command{verb: "dump", usage: "dump H", kind: KindReader, summary: "输出整个序列", minArgs: 1, maxArgs: 1,
			run: func(s *Session, args []string) (string, error) {
				h, err := s.handle(args[0])
				if err != nil {
					return "", err
				}
				seq, ok := s.reg.Snapshot(h)
				if !ok {
					return Absent, nil
				}
				return formatSeq(seq), nil
			}},
		&Command{verb: "help", usage: "help", kind: KindMeta, summary: "列出可用命令",
			run: func(_ *Session, _ []string) (string, error) {
				return Help(), nil
			}},
	)
}

// Commands 返回按名称排序的全部命令
func Commands() []*Command {
	return catalog.List()
}

// CommandsOfKind 返回指定分类的命令
func CommandsOfKind(kind string) []*Command {
	return catalog.GetByType(kind)
}

// Help 返回纯文本的命令列表
func Help() string {
	var b strings.Builder
	for i, c := range Commands() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-22s %s", c.usage, c.summary)
	}
	return b.String()
}

// HelpMarkdown 返回 Markdown 格式的命令说明
func HelpMarkdown() string {
	var b strings.Builder
	b.WriteString("# strdeque 命令\n\n")
	b.WriteString("句柄可以写成数字，也可以写成 `$N` 表示本次会话中第 N 次 `new` 的结果。\n")
	b.WriteString("值中包含空白时使用双引号，例如 `insert $1 0 \"a b\"`。\n\n")
	for _, kind := range []string{KindMutator, KindReader, KindMeta} {
		fmt.Fprintf(&b, "## %s\n\n| 命令 | 说明 |\n|---|---|\n", kind)
		for _, c := range CommandsOfKind(kind) {
			fmt.Fprintf(&b, "| `%s` | %s |\n", c.usage, c.summary)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Lookup 按名称查找命令
func Lookup(verb string) (*Command, bool) {
	return catalog.Get(verb)
}
