package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/ports"
)

// toolIDLength matches the login-code alphabet; tool ids are short opaque
// handles, not secrets.
const toolIDLength = 8

// ToolStatusCreating is the status a tool carries until provisioning
// (handled outside this service) completes.
const ToolStatusCreating = "creating"

// CreateToolInput carries the user-supplied fields for a new tool.
type CreateToolInput struct {
	Type    domainauth.ToolType
	Version string
	CPU     string
	Memory  string
}

// ToolServiceOptions groups dependencies for ToolService.
type ToolServiceOptions struct {
	Tools  ports.ToolRepository // Required: tool persistence
	Logger *slog.Logger         // Optional: structured logger
}

// ToolService provisions workbench tool records for the acting user.
type ToolService struct {
	tools  ports.ToolRepository
	logger *slog.Logger
}

// NewToolService constructs a ToolService.
func NewToolService(opts ToolServiceOptions) (*ToolService, error) {
	if opts.Tools == nil {
		return nil, errors.New("ToolRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ToolService{
		tools:  opts.Tools,
		logger: logger.With("component", "tool_service"),
	}, nil
}

// CreateTool records a new tool owned by the acting user, in creating state.
func (s *ToolService) CreateTool(ctx context.Context, actor domainauth.Context, in CreateToolInput) (domainauth.Tool, error) {
	if !domainauth.ValidToolType(in.Type) {
		return domainauth.Tool{}, apperrors.Validationf("invalid tool type %q", in.Type)
	}
	if strings.TrimSpace(in.Version) == "" {
		return domainauth.Tool{}, apperrors.Validation("tool version is required")
	}

	id, err := RandomBase36(toolIDLength)
	if err != nil {
		return domainauth.Tool{}, err
	}

	tool := domainauth.Tool{
		ID:      id,
		UserID:  actor.UserID,
		Type:    in.Type,
		Version: in.Version,
		CPU:     in.CPU,
		Memory:  in.Memory,
		Status:  ToolStatusCreating,
	}
	if err := s.tools.PutTool(ctx, tool); err != nil {
		return domainauth.Tool{}, err
	}

	s.logger.InfoContext(ctx, "tool created",
		"tool_id", tool.ID,
		"tool_type", tool.Type,
		"version", tool.Version,
		"user_id", actor.UserID,
	)
	return tool, nil
}

// Get returns a tool owned by the acting user.
func (s *ToolService) Get(ctx context.Context, actor domainauth.Context, toolID string) (domainauth.Tool, error) {
	return s.tools.FindTool(ctx, actor.UserID, toolID)
}
