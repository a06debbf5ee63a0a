package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/toolfoundation/model"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo
	Logger     *zap.Logger
}

// ServerInfo describes this MCP server for initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// ToolHandler executes a local tool with arguments parsed from the request.
// The result must be JSON serializable.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// LocalToolOption configures local tool registration.
type LocalToolOption func(*localToolConfig)

type localToolConfig struct {
	namespace string
	tags      []string
	version   string
	title     string
}

// WithNamespace sets the namespace for a local tool.
func WithNamespace(ns string) LocalToolOption {
	return func(c *localToolConfig) { c.namespace = ns }
}

// WithTags sets the tags for a local tool.
func WithTags(tags ...string) LocalToolOption {
	return func(c *localToolConfig) { c.tags = tags }
}

// WithVersion sets the version for a local tool.
func WithVersion(v string) LocalToolOption {
	return func(c *localToolConfig) { c.version = v }
}

// WithTitle sets the human readable tool title.
func WithTitle(title string) LocalToolOption {
	return func(c *localToolConfig) { c.title = title }
}

type registeredTool struct {
	tool    model.Tool
	handler ToolHandler
}

// Registry holds executable tools and serves them over MCP transports.
type Registry struct {
	config Config
	logger *zap.Logger

	mu      sync.RWMutex
	tools   map[string]registeredTool // by ToolID
	started bool

	calls    atomic.Int64
	failures atomic.Int64
}

// New creates a new Registry with the given config.
func New(cfg Config) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		config: cfg,
		logger: logger,
		tools:  make(map[string]registeredTool),
	}
}

// RegisterLocal registers a tool with a local execution handler.
func (r *Registry) RegisterLocal(tool model.Tool, handler ToolHandler) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}
	if handler == nil {
		return fmt.Errorf("%w: nil handler for %s", ErrInvalidRequest, tool.Name)
	}

	id := tool.ToolID()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, id)
	}
	r.tools[id] = registeredTool{tool: tool, handler: handler}
	r.logger.Debug("tool registered", zap.String("tool", id))
	return nil
}

// RegisterLocalFunc is a convenience for inline tool definition.
func (r *Registry) RegisterLocalFunc(
	name, description string,
	inputSchema map[string]any,
	handler ToolHandler,
	opts ...LocalToolOption,
) error {
	cfg := localToolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tool := model.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Title:       cfg.title,
			Description: description,
			InputSchema: inputSchema,
		},
		Namespace: cfg.namespace,
		Version:   cfg.version,
		Tags:      model.NormalizeTags(cfg.tags),
	}
	return r.RegisterLocal(tool, handler)
}

// Tools returns all registered tools ordered by tool ID.
func (r *Registry) Tools() []model.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tools))
	for id := range r.tools {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]model.Tool, len(ids))
	for i, id := range ids {
		out[i] = r.tools[id].tool
	}
	return out
}

// GetTool returns a tool by ID, or by bare name when that is unambiguous.
func (r *Registry) GetTool(id string) (model.Tool, error) {
	rt, err := r.lookup(id)
	if err != nil {
		return model.Tool{}, err
	}
	return rt.tool, nil
}

func (r *Registry) lookup(id string) (registeredTool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rt, ok := r.tools[id]; ok {
		return rt, nil
	}
	var found []registeredTool
	for _, rt := range r.tools {
		if rt.tool.Name == id {
			found = append(found, rt)
		}
	}
	if len(found) != 1 {
		return registeredTool{}, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	return found[0], nil
}

// Execute runs a tool by ID or name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	rt, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}

	r.calls.Add(1)
	result, err := rt.handler(ctx, args)
	if err != nil {
		r.failures.Add(1)
		r.logger.Debug("tool failed", zap.String("tool", rt.tool.ToolID()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	return result, nil
}

// Start marks the registry as serving.
func (r *Registry) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true
	r.logger.Info("registry started",
		zap.String("server", r.config.ServerInfo.Name),
		zap.Int("tools", len(r.tools)))
	return nil
}

// Stop marks the registry as stopped. Stopping twice is a no-op.
func (r *Registry) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil
	}
	r.started = false
	r.logger.Info("registry stopped")
	return nil
}

// RegistryStats returns registry statistics.
type RegistryStats struct {
	TotalTools int   `json:"totalTools"`
	Calls      int64 `json:"calls"`
	Failures   int64 `json:"failures"`
}

// Stats returns registry statistics.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	n := len(r.tools)
	r.mu.RUnlock()
	return RegistryStats{
		TotalTools: n,
		Calls:      r.calls.Load(),
		Failures:   r.failures.Load(),
	}
}

// HealthCheck returns nil if the registry is healthy.
func (r *Registry) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.started {
		return ErrNotStarted
	}
	return nil
}
