package diag

import (
	"strdeque/internal/strdeque"
	"strdeque/internal/util"
)

// LogSink 把诊断事件写入日志器的 DEBUG 级别
type LogSink struct {
	logger *util.Logger
}

// NewLogSink 创建日志输出，logger 为 nil 时使用默认日志器
func NewLogSink(logger *util.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Report 实现 strdeque.Sink
func (s *LogSink) Report(e strdeque.Event) {
	logger := s.logger
	if logger == nil {
		logger = util.DefaultLogger
	}
	if !logger.Enabled(util.LogLevelDebug) {
		return
	}

	fields := map[string]any{
		"op":    e.Op,
		"phase": string(e.Phase),
	}
	if e.Op != strdeque.OpInit && e.Op != strdeque.OpEmpty {
		fields["handle"] = uint64(e.Handle)
	}
	for _, arg := range e.Args {
		fields[arg.Key] = arg.Value
	}

	if e.Phase == strdeque.PhaseEnter {
		logger.Debugw("调用 "+e.Op, fields)
		return
	}

	fields["outcome"] = string(e.Outcome)
	for _, f := range e.Fields {
		fields[f.Key] = f.Value
	}
	if !e.Start.IsZero() {
		fields["elapsed"] = e.At.Sub(e.Start).String()
	}
	logger.Debugw(e.Op+": "+e.Message, fields)
}
