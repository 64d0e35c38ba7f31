package data

import (
	"context"
	"errors"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/store"
)

const (
	attrToolCPU    = "cpu"
	attrToolMemory = "memory"
)

// ToolRepo reads and writes provisioned workbench tools. Tools are indexed
// by type and version so operators can find every instance of a given kind.
type ToolRepo struct {
	store store.Store
}

// NewToolRepo creates a ToolRepo over the given store.
func NewToolRepo(s store.Store) *ToolRepo {
	return &ToolRepo{store: s}
}

// PutTool writes a tool record under its owning user.
func (r *ToolRepo) PutTool(ctx context.Context, t domainauth.Tool) error {
	return r.store.Put(ctx, store.Item{
		Key:    store.ToolKey(t.UserID, t.ID),
		GSI1PK: store.ToolTypePartition(string(t.Type)),
		GSI1SK: store.ToolVersionSort(t.Version),
		Attributes: map[string]string{
			attrToolCPU:    t.CPU,
			attrToolMemory: t.Memory,
			attrStatus:     t.Status,
		},
	})
}

// FindTool looks up a tool by owner and id.
func (r *ToolRepo) FindTool(ctx context.Context, userID, toolID string) (domainauth.Tool, error) {
	item, err := r.store.Get(ctx, store.ToolKey(userID, toolID))
	if errors.Is(err, store.ErrNotFound) {
		return domainauth.Tool{}, apperrors.NotFoundf("no tool %s", toolID)
	}
	if err != nil {
		return domainauth.Tool{}, err
	}
	return decodeTool(item)
}

// ToolsByType returns every tool of the given type, ordered by version.
func (r *ToolRepo) ToolsByType(ctx context.Context, toolType domainauth.ToolType) ([]domainauth.Tool, error) {
	items, err := r.store.Query(ctx, store.Query{
		Index:     store.IndexGSI1,
		Partition: store.ToolTypePartition(string(toolType)),
	})
	if err != nil {
		return nil, err
	}

	tools := make([]domainauth.Tool, 0, len(items))
	for _, it := range items {
		tool, decErr := decodeTool(it)
		if decErr != nil {
			return nil, decErr
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

func decodeTool(it store.Item) (domainauth.Tool, error) {
	userID, ok := store.ParseUserID(it.PK)
	if !ok {
		return domainauth.Tool{}, apperrors.Internal("malformed tool item key " + it.PK)
	}
	toolID, ok := store.ParseToolID(it.SK)
	if !ok {
		return domainauth.Tool{}, apperrors.Internal("malformed tool item key " + it.SK)
	}

	typeValue, _ := store.ParseToolType(it.GSI1PK)
	version, _ := store.ParseToolVersion(it.GSI1SK)

	return domainauth.Tool{
		ID:      toolID,
		UserID:  userID,
		Type:    domainauth.ToolType(typeValue),
		Version: version,
		CPU:     it.Attribute(attrToolCPU),
		Memory:  it.Attribute(attrToolMemory),
		Status:  it.Attribute(attrStatus),
	}, nil
}
