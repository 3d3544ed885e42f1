// Package mcpserver exposes the investigator as MCP tools over stdio.
package mcpserver

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	Name    = "jprobe"
	Version = "0.1.0"
)

// Server answers tool calls against one class registry. Every call gets its
// own Investigator, so concurrent calls never share a target.
type Server struct {
	registry  *registry.ClassRegistry
	delimiter string
	logger    *log.Logger
	reload    Reloader
	mcp       *server.MCPServer
}

// Reloader rebuilds the server's registry in place.
type Reloader func(ctx context.Context) error

type Option func(*Server)

func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDelimiter sets the inheritance_chain delimiter used when the caller
// passes none.
func WithDelimiter(delimiter string) Option {
	return func(s *Server) {
		if delimiter != "" {
			s.delimiter = delimiter
		}
	}
}

// WithReloader enables the reload_classes tool.
func WithReloader(reload Reloader) Option {
	return func(s *Server) {
		s.reload = reload
	}
}

func New(reg *registry.ClassRegistry, opts ...Option) *Server {
	s := &Server{
		registry:  reg,
		delimiter: "->",
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(Name, Version, server.WithToolCapabilities(false))
	s.registerTools()
	return s
}

// ServeStdio blocks serving requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio", "classes", s.registry.Count())
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	classArg := mcp.WithString("class", mcp.Required(),
		mcp.Description("Qualified class name (e.g. 'jprobe.samples.Dog') or a simple name that is unique in the registry"))
	ctorArgs := mcp.WithArray("ctor_args", mcp.WithStringItems(),
		mcp.Description("Build the target through the public constructor with this many arguments. Omit to use a fresh instance holding field initialisers."))
	args := mcp.WithArray("args", mcp.WithStringItems(),
		mcp.Description("Argument literals. Types are inferred (42, 4.2, true, \"text\", null) or forced with a prefix such as 'long:5' or 'String:42'."))

	s.mcp.AddTool(mcp.NewTool("summarize_class",
		mcp.WithDescription("Report the structure of a class: declared member counts, constant fields, static methods, interfaces, parent and inheritance chain."),
		classArg,
	), s.summarizeClass)

	s.mcp.AddTool(mcp.NewTool("inheritance_chain",
		mcp.WithDescription("Join the simple names of a class chain from the root to the class itself."),
		classArg,
		mcp.WithString("delimiter", mcp.Description("Separator between names. Defaults to the configured delimiter.")),
	), s.inheritanceChain)

	s.mcp.AddTool(mcp.NewTool("invoke_int",
		mcp.WithDescription("Invoke a public method declared on the class and return its result as an integer."),
		classArg,
		mcp.WithString("method", mcp.Required(), mcp.Description("Method name")),
		args,
		ctorArgs,
	), s.invokeInt)

	s.mcp.AddTool(mcp.NewTool("elevate_invoke",
		mcp.WithDescription("Invoke a declared method whatever its visibility, resolved by exact name and parameter types."),
		classArg,
		mcp.WithString("method", mcp.Required(), mcp.Description("Method name")),
		mcp.WithArray("params", mcp.WithStringItems(),
			mcp.Description("Parameter type names (int, long, String or a class name). Omit to infer them from args.")),
		args,
		ctorArgs,
	), s.elevateInvoke)

	s.mcp.AddTool(mcp.NewTool("create_instance",
		mcp.WithDescription("Create a new instance through the public constructor whose arity matches the argument count and show its fields."),
		classArg,
		args,
	), s.createInstance)

	s.mcp.AddTool(mcp.NewTool("list_classes",
		mcp.WithDescription("List registered classes in registration order."),
		mcp.WithString("source", mcp.Description("Only list classes from this source: builtin, samples, a catalog path or an imported directory.")),
	), s.listClasses)

	if s.reload != nil {
		s.mcp.AddTool(mcp.NewTool("reload_classes",
			mcp.WithDescription("Re-read the configured catalogs and Go packages and replace the registered classes."),
		), s.reloadClasses)
	}
}
