// Package scenario 加载 YAML 场景文件，并在全新的注册表上逐步校验命令输出
package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"strdeque/internal/common/errors"
	"strdeque/internal/script"
	"strdeque/internal/strdeque"
	"strdeque/internal/util"
)

// Step 是场景中的一步
type Step struct {
	Do     string  `yaml:"do"`
	Expect *string `yaml:"expect,omitempty"`
	// Fails 为 true 表示该命令本身应该是格式错误的
	Fails bool `yaml:"fails,omitempty"`
}

// Scenario 是一组按顺序执行的命令
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// File 是场景文件的顶层结构，可以是单个场景，也可以是场景列表
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// StepResult 记录一步的实际输出
type StepResult struct {
	Step   Step
	Output string
	Err    error
	Passed bool
}

// Result 是一个场景的执行结果
type Result struct {
	Name  string
	Steps []StepResult
}

// Failed 返回未通过的步骤数量
func (r Result) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if !s.Passed {
			n++
		}
	}
	return n
}

// Passed 判断场景是否全部通过
func (r Result) Passed() bool {
	return r.Failed() == 0
}

// Err 在场景未通过时返回 SCENARIO_FAILED 错误
func (r Result) Err() error {
	if r.Passed() {
		return nil
	}
	return errors.NewScenarioError(r.Name, r.Failed())
}

// Parse 解析场景文件内容
func Parse(data []byte) ([]Scenario, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Scenarios) > 0 {
		return file.Scenarios, nil
	}

	var single Scenario
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	if len(single.Steps) == 0 {
		return nil, fmt.Errorf("场景文件不包含任何步骤")
	}
	return []Scenario{single}, nil
}

// Load 读取并解析场景文件
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapScenarioLoadError(path, err)
	}
	scenarios, err := Parse(data)
	if err != nil {
		return nil, errors.WrapScenarioLoadError(path, err)
	}
	for i := range scenarios {
		if scenarios[i].Name == "" {
			scenarios[i].Name = fmt.Sprintf("%s#%d", path, i+1)
		}
	}
	return scenarios, nil
}

// Run 在新的注册表上执行场景
func (sc Scenario) Run(opts ...strdeque.Option) Result {
	sess := script.NewSession(strdeque.New(opts...))
	res := Result{Name: sc.Name}

	for _, step := range sc.Steps {
		out, err := sess.Exec(step.Do)
		r := StepResult{Step: step, Output: out.Output, Err: err}
		switch {
		case step.Fails:
			r.Passed = err != nil
		case err != nil:
			r.Passed = false
		case step.Expect != nil:
			r.Passed = out.Output == *step.Expect
		default:
			r.Passed = true
		}
		res.Steps = append(res.Steps, r)
	}

	util.Debugw("场景执行完成", map[string]any{
		"scenario": sc.Name,
		"steps":    len(sc.Steps),
		"failed":   res.Failed(),
	})
	return res
}

// Report 把结果写成人类可读的文本
func Report(w io.Writer, res Result) {
	status := "PASS"
	if !res.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s %s (%d steps)\n", status, res.Name, len(res.Steps))

	for i, s := range res.Steps {
		if s.Passed {
			continue
		}
		switch {
		case s.Step.Fails:
			fmt.Fprintf(w, "  step %d: %q expected an error, got %q\n", i+1, s.Step.Do, s.Output)
		case s.Err != nil:
			fmt.Fprintf(w, "  step %d: %q: %v\n", i+1, s.Step.Do, s.Err)
		default:
			fmt.Fprintf(w, "  step %d: %q: want %q, got %q\n", i+1, s.Step.Do, *s.Step.Expect, s.Output)
		}
	}
}
