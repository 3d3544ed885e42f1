package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/values"
	"github.com/mark3labs/mcp-go/mcp"
)

// ClassEntry is one row of list_classes.
type ClassEntry struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
}

type ClassList struct {
	Classes []ClassEntry `json:"classes"`
}

// probe resolves the class argument and, when ctor is set, honours
// ctor_args to build the target.
func (s *Server) probe(request mcp.CallToolRequest, ctor bool) (*investigator.Investigator, error) {
	name, err := request.RequireString("class")
	if err != nil {
		return nil, err
	}
	class, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	var ctorArgs []meta.Value
	if ctor {
		if ctorArgs, err = optionalArgs(request, "ctor_args"); err != nil {
			return nil, err
		}
	}
	return investigator.Probe(class, ctorArgs, investigator.WithLogger(s.logger))
}

// optionalArgs parses a string array argument. An absent argument yields
// nil; a present one yields a non-nil slice even when empty.
func optionalArgs(request mcp.CallToolRequest, key string) ([]meta.Value, error) {
	raws, err := optionalStrings(request, key)
	if err != nil || raws == nil {
		return nil, err
	}
	return values.ParseAll(raws)
}

// optionalStrings reads a string array argument, nil when absent or null.
// Items that are not strings are rejected rather than dropped.
func optionalStrings(request mcp.CallToolRequest, key string) ([]string, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}

	switch items := raw.(type) {
	case []string:
		return append([]string{}, items...), nil
	case []any:
		strs := make([]string, len(items))
		for i, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: expected a string, got %T %v", key, i, item, item)
			}
			strs[i] = str
		}
		return strs, nil
	default:
		return nil, fmt.Errorf("%s: expected an array of strings, got %T", key, raw)
	}
}

func (s *Server) summarizeClass(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inv, err := s.probe(request, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary, err := inv.Summarize()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Failed to encode summary: " + err.Error()), nil
	}
	return mcp.NewToolResultStructured(summary, string(text)), nil
}

func (s *Server) inheritanceChain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inv, err := s.probe(request, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	delimiter := request.GetString("delimiter", s.delimiter)
	return mcp.NewToolResultText(inv.InheritanceChain(delimiter)), nil
}

func (s *Server) invokeInt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	method, err := request.RequireString("method")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inv, err := s.probe(request, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args, err := optionalArgs(request, "args")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n, err := inv.InvokeInt(method, args...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strconv.Itoa(n)), nil
}

func (s *Server) elevateInvoke(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	method, err := request.RequireString("method")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inv, err := s.probe(request, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args, err := optionalArgs(request, "args")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	names, err := optionalStrings(request, "params")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params, err := values.ParamTypes(s.registry, names, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := inv.ElevateAndInvoke(method, params, args...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(values.Format(result)), nil
}

func (s *Server) createInstance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inv, err := s.probe(request, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args, err := optionalArgs(request, "args")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	obj, err := inv.CreateInstance(len(args), args...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(obj.String()), nil
}

func (s *Server) listClasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := s.registry.GetAllClasses()
	if source := request.GetString("source", ""); source != "" {
		infos = s.registry.GetClassesBySource(source)
	}

	list := ClassList{Classes: make([]ClassEntry, 0, len(infos))}
	for _, info := range infos {
		list.Classes = append(list.Classes, ClassEntry{
			Name:   info.Class.Name(),
			Kind:   info.Class.Kind().String(),
			Source: info.Source,
		})
	}

	text, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Failed to encode classes: " + err.Error()), nil
	}
	return mcp.NewToolResultStructured(list, string(text)), nil
}

func (s *Server) reloadClasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.reload(ctx); err != nil {
		s.logger.Warn("reload failed", "err", err)
		return mcp.NewToolResultError("Reload failed: " + err.Error()), nil
	}
	s.logger.Info("classes reloaded", "classes", s.registry.Count())
	return mcp.NewToolResultText(fmt.Sprintf("%d classes registered", s.registry.Count())), nil
}
