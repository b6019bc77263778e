// Package mcpserver 通过 MCP 协议暴露注册表操作
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"strdeque/internal/common/errors"
	"strdeque/internal/strdeque"
	"strdeque/internal/util"
)

// HandleInput 只包含一个句柄的工具输入
type HandleInput struct {
	ID uint64 `json:"id" jsonschema:"deque handle, 0 is the Empty Deque"`
}

// PositionInput 句柄和位置
type PositionInput struct {
	ID  uint64 `json:"id" jsonschema:"deque handle"`
	Pos int    `json:"pos" jsonschema:"zero-based position"`
}

// InsertInput 插入参数，value 缺省表示空值
type InsertInput struct {
	ID    uint64  `json:"id" jsonschema:"deque handle"`
	Pos   int     `json:"pos" jsonschema:"zero-based position, clamped to the deque size"`
	Value *string `json:"value,omitempty" jsonschema:"element to insert; omitted means NULL and the call is a no-op"`
}

// CompareInput 比较参数
type CompareInput struct {
	ID1 uint64 `json:"id1" jsonschema:"left deque handle"`
	ID2 uint64 `json:"id2" jsonschema:"right deque handle"`
}

// HandleOutput 返回一个句柄
type HandleOutput struct {
	ID uint64 `json:"id"`
}

// SizeOutput 返回序列长度
type SizeOutput struct {
	Size int `json:"size"`
}

// ValueOutput 返回读取结果，found 为 false 时 value 无意义
type ValueOutput struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// CompareOutput 返回比较结果
type CompareOutput struct {
	Result int `json:"result"`
}

// ExistsOutput 返回句柄是否存在
type ExistsOutput struct {
	Exists bool `json:"exists"`
}

// DoneOutput 是修改类工具的返回值
type DoneOutput struct {
	Done bool `json:"done"`
}

// Server 把一个注册表包装成 MCP 服务
type Server struct {
	reg    *strdeque.Registry
	server *mcp.Server
}

// New 创建 MCP 服务并注册全部工具
func New(reg *strdeque.Registry, name, version string) *Server {
	s := &Server{
		reg:    reg,
		server: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
	}
	s.registerTools()
	return s
}

// MCP 返回底层的 mcp.Server
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run 在标准输入输出上提供服务，直到连接关闭或 ctx 取消
func (s *Server) Run(ctx context.Context) error {
	util.Infow("MCP服务启动", map[string]any{"transport": "stdio"})
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return errors.WrapError(errors.ErrCodeMCPServeFailed, "MCP服务运行失败", err)
	}
	return nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_new", Description: "Create a new empty deque and return its handle."},
		func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, HandleOutput, error) {
			return nil, HandleOutput{ID: uint64(s.reg.Create())}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_delete", Description: "Delete a deque. Deleting handle 0 or an unknown handle does nothing."},
		func(ctx context.Context, req *mcp.CallToolRequest, in HandleInput) (*mcp.CallToolResult, DoneOutput, error) {
			s.reg.Delete(strdeque.Handle(in.ID))
			return nil, DoneOutput{Done: true}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_size", Description: "Number of elements in a deque; 0 for unknown handles."},
		func(ctx context.Context, req *mcp.CallToolRequest, in HandleInput) (*mcp.CallToolResult, SizeOutput, error) {
			return nil, SizeOutput{Size: s.reg.Size(strdeque.Handle(in.ID))}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_insert_at", Description: "Insert a value at a position; positions past the end append."},
		func(ctx context.Context, req *mcp.CallToolRequest, in InsertInput) (*mcp.CallToolResult, DoneOutput, error) {
			s.reg.InsertAtNullable(strdeque.Handle(in.ID), in.Pos, in.Value)
			return nil, DoneOutput{Done: true}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_remove_at", Description: "Remove the element at a position; out-of-range positions do nothing."},
		func(ctx context.Context, req *mcp.CallToolRequest, in PositionInput) (*mcp.CallToolResult, DoneOutput, error) {
			s.reg.RemoveAt(strdeque.Handle(in.ID), in.Pos)
			return nil, DoneOutput{Done: true}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_get_at", Description: "Read the element at a position; found is false when absent."},
		func(ctx context.Context, req *mcp.CallToolRequest, in PositionInput) (*mcp.CallToolResult, ValueOutput, error) {
			v, ok := s.reg.GetAt(strdeque.Handle(in.ID), in.Pos)
			return nil, ValueOutput{Value: v, Found: ok}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_clear", Description: "Remove all elements from a deque."},
		func(ctx context.Context, req *mcp.CallToolRequest, in HandleInput) (*mcp.CallToolResult, DoneOutput, error) {
			s.reg.Clear(strdeque.Handle(in.ID))
			return nil, DoneOutput{Done: true}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_comp", Description: "Compare two deques lexicographically; unknown handles compare as empty."},
		func(ctx context.Context, req *mcp.CallToolRequest, in CompareInput) (*mcp.CallToolResult, CompareOutput, error) {
			return nil, CompareOutput{Result: s.reg.Compare(strdeque.Handle(in.ID1), strdeque.Handle(in.ID2))}, nil
		})

	mcp.AddTool(s.server, &mcp.Tool{Name: "strdeque_exists", Description: "Report whether a handle currently exists."},
		func(ctx context.Context, req *mcp.CallToolRequest, in HandleInput) (*mcp.CallToolResult, ExistsOutput, error) {
			return nil, ExistsOutput{Exists: s.reg.Exists(strdeque.Handle(in.ID))}, nil
		})
}
