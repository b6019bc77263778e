package diag

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"strdeque/internal/strdeque"
)

const tracerName = "strdeque"

// TraceSink 为每个完成的注册表操作生成一个 span
//
// span 的起止时间取自事件本身，被拒绝的调用只通过 strdeque.outcome 属性区分，
// 不设置错误状态。
type TraceSink struct {
	tracer trace.Tracer
}

// NewTraceSink 使用给定的 TracerProvider 创建 TraceSink
func NewTraceSink(tp trace.TracerProvider) *TraceSink {
	return &TraceSink{tracer: tp.Tracer(tracerName)}
}

// Report 实现 strdeque.Sink
func (s *TraceSink) Report(e strdeque.Event) {
	if e.Phase != strdeque.PhaseExit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int64("strdeque.handle", int64(e.Handle)),
		attribute.String("strdeque.outcome", string(e.Outcome)),
		attribute.String("strdeque.message", e.Message),
	}
	for _, arg := range e.Args {
		attrs = append(attrs, toAttribute("strdeque.arg."+arg.Key, arg.Value))
	}
	for _, f := range e.Fields {
		attrs = append(attrs, toAttribute("strdeque.result."+f.Key, f.Value))
	}

	_, span := s.tracer.Start(context.Background(), e.Op,
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(attrs...),
	)
	span.End(trace.WithTimestamp(e.At))
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case int:
		return attribute.Int(key, v)
	case bool:
		return attribute.Bool(key, v)
	case string:
		return attribute.String(key, v)
	case strdeque.Handle:
		return attribute.Int64(key, int64(v))
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

// NewStdoutProvider 创建把 span 写到 w 的 TracerProvider
//
// 使用同步导出器，每个 span 结束时立即输出。调用方负责 Shutdown。
func NewStdoutProvider(w io.Writer, pretty bool) (*sdktrace.TracerProvider, error) {
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if pretty {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", tracerName))
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	), nil
}
