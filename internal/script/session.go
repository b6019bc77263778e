package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"strdeque/internal/common/errors"
	"strdeque/internal/strdeque"
)

// Session 在一个注册表上逐行执行命令
type Session struct {
	reg     *strdeque.Registry
	created []strdeque.Handle
	line    int
}

// NewSession 创建会话
func NewSession(reg *strdeque.Registry) *Session {
	return &Session{reg: reg}
}

// Registry 返回会话使用的注册表
func (s *Session) Registry() *strdeque.Registry {
	return s.reg
}

// Created 返回本次会话中 new 命令创建的句柄
func (s *Session) Created() []strdeque.Handle {
	return append([]strdeque.Handle(nil), s.created...)
}

// Result 是一行命令的执行结果
type Result struct {
	Verb   string // 空行和注释为空
	Output string
}

// Exec 执行一行命令
//
// 命令格式错误时返回 INVALID_COMMAND 错误；注册表操作本身从不出错。
func (s *Session) Exec(line string) (Result, error) {
	s.line++

	tokens, err := tokenize(line)
	if err != nil {
		return Result{}, s.wrap(err)
	}
	if len(tokens) == 0 {
		return Result{}, nil
	}

	verb, args := strings.ToLower(tokens[0]), tokens[1:]
	cmd, ok := Lookup(verb)
	if !ok {
		return Result{}, errors.NewCommandError(s.line, "未知命令", verb)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return Result{}, errors.NewCommandError(s.line, "参数数量错误",
			fmt.Sprintf("用法: %s", cmd.usage))
	}

	out, err := cmd.run(s, args)
	if err != nil {
		return Result{}, s.wrap(err)
	}
	return Result{Verb: verb, Output: out}, nil
}

// handle 解析句柄：数字或 $N
func (s *Session) handle(tok string) (strdeque.Handle, error) {
	if ref, ok := strings.CutPrefix(tok, "$"); ok {
		n, err := strconv.Atoi(ref)
		if err != nil || n < 1 || n > len(s.created) {
			return 0, errBadArg("句柄引用无效", tok)
		}
		return s.created[n-1], nil
	}

	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, errBadArg("句柄必须是非负整数", tok)
	}
	return strdeque.Handle(n), nil
}

func (s *Session) handleAndPos(args []string) (strdeque.Handle, int, error) {
	h, err := s.handle(args[0])
	if err != nil {
		return 0, 0, err
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, errBadArg("位置必须是整数", args[1])
	}
	return h, pos, nil
}

func (s *Session) wrap(err error) error {
	if argErr, ok := err.(*argError); ok {
		return errors.NewCommandError(s.line, argErr.msg, argErr.detail)
	}
	return err
}

// argError 是命令参数错误，由 Session 补充行号后转换为 AppError
type argError struct {
	msg    string
	detail string
}

func (e *argError) Error() string { return e.msg + ": " + e.detail }

func errBadArg(msg, tok string) error {
	return &argError{msg: msg, detail: tok}
}

func errUnterminated(tok string) error {
	return &argError{msg: "引号未闭合", detail: tok}
}

func errBadQuote(tok string, err error) error {
	return &argError{msg: "字符串字面量无效", detail: fmt.Sprintf("%s (%v)", tok, err)}
}

// RunOptions 控制脚本执行
type RunOptions struct {
	// Strict 为 true 时遇到第一条格式错误的命令即停止
	Strict bool
	// Echo 为 true 时在输出前附上原命令
	Echo bool
}

// Summary 统计一次脚本执行
type Summary struct {
	Executed int
	Failed   int
}

// Run 从 r 逐行读取命令执行，并把输出写到 w
//
// 格式错误的命令输出 "error: ..." 后继续执行；Strict 模式下返回第一个错误。
func Run(sess *Session, r io.Reader, w io.Writer, opts RunOptions) (Summary, error) {
	var sum Summary
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		res, err := sess.Exec(line)
		if err != nil {
			sum.Failed++
			if opts.Strict {
				return sum, err
			}
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		if res.Verb == "" {
			continue
		}
		sum.Executed++
		if opts.Echo {
			fmt.Fprintf(w, "> %s\n", strings.TrimSpace(line))
		}
		fmt.Fprintln(w, res.Output)
	}
	if err := scanner.Err(); err != nil {
		return sum, errors.WrapError(errors.ErrCodeInvalidCommand, "读取脚本失败", err)
	}
	return sum, nil
}
