// Package shell 提供交互式命令行界面
package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"strdeque/internal/common/errors"
	"strdeque/internal/diag"
	"strdeque/internal/script"
	"strdeque/internal/strdeque"
	"strdeque/internal/util"
)

const (
	defaultPrompt      = "strdeque> "
	defaultHistorySize = 500
	defaultWidth       = 80
)

// Options 配置交互界面
type Options struct {
	Registry    *strdeque.Registry
	Prompt      string
	HistorySize int
	// Recorder 不为 nil 时，每条命令之后显示未成功的注册表事件
	Recorder *diag.Recorder
}

// Model 是 bubbletea 模型
type Model struct {
	sess     *script.Session
	input    textinput.Model
	viewport viewport.Model
	recorder *diag.Recorder

	prompt string
	lines  []string
	limit  int
	width  int
	height int

	helpText string
	quitting bool
}

// New 创建交互界面模型
func New(opts Options) Model {
	reg := opts.Registry
	if reg == nil {
		reg = strdeque.New()
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	limit := opts.HistorySize
	if limit <= 0 {
		limit = defaultHistorySize
	}

	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "help"
	ti.Focus()

	m := Model{
		sess:     script.NewSession(reg),
		input:    ti,
		viewport: viewport.New(defaultWidth, 20),
		recorder: opts.Recorder,
		prompt:   prompt,
		limit:    limit,
		width:    defaultWidth,
	}
	m.helpText = renderHelp(defaultWidth)
	return m
}

// renderHelp 用 glamour 渲染命令帮助，失败时退回纯文本
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		util.Warnw("创建帮助渲染器失败", map[string]any{"error": err.Error()})
		return script.Help()
	}
	out, err := r.Render(script.HelpMarkdown())
	if err != nil {
		util.Warnw("渲染帮助失败", map[string]any{"error": err.Error()})
		return script.Help()
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		// 输入行和带边框的状态栏各占位置
		m.viewport.Height = max(msg.Height-4, 1)
		m.input.Width = max(msg.Width-len(m.prompt)-1, 1)
		m.helpText = renderHelp(msg.Width)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.lines = nil
			m.refresh()
			return m, nil
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			if m.exec(line) {
				m.quitting = true
				return m, tea.Quit
			}
			m.refresh()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// exec 执行一行输入，返回 true 表示退出
func (m *Model) exec(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	m.append(promptStyle.Render(m.prompt) + trimmed)

	switch strings.ToLower(trimmed) {
	case "exit", "quit":
		return true
	case "help":
		m.append(m.helpText)
		return false
	}

	if m.recorder != nil {
		m.recorder.Reset()
	}
	res, err := m.sess.Exec(trimmed)
	if err != nil {
		m.append(errorStyle.Render(fmt.Sprintf("error: %v", err)))
		return false
	}
	if res.Output != "" {
		m.append(outputStyle.Render(res.Output))
	}
	m.appendEvents()
	return false
}

// appendEvents 显示本条命令产生的非成功事件
func (m *Model) appendEvents() {
	if m.recorder == nil {
		return
	}
	for _, e := range m.recorder.Events() {
		if e.Outcome == strdeque.OutcomeOK {
			continue
		}
		m.append(eventStyle.Render(fmt.Sprintf("  [%s] %s", e.Outcome, e.Message)))
	}
}

func (m *Model) append(s string) {
	m.lines = append(m.lines, s)
	if over := len(m.lines) - m.limit; over > 0 {
		m.lines = m.lines[over:]
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	reg := m.sess.Registry()
	status := statusStyle.Width(m.width).Render(fmt.Sprintf(
		"序列 %d · 元素 %d · help 查看命令 · ctrl+l 清屏 · esc 退出",
		reg.Len()-1, reg.Elements()))
	return m.viewport.View() + "\n" + m.input.View() + "\n" + status
}

// Run 启动交互界面，直到用户退出或 ctx 取消
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return errors.WrapError(errors.ErrCodeSystemError, "交互界面运行失败", err)
	}
	return nil
}
