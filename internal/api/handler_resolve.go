package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shardmux/shardmux/internal/resolver"
	"github.com/shardmux/shardmux/internal/shardkey"
)

// --- Huma Input/Output types ---

type ResolveInput struct {
	// Keys are opaque and may contain any character, "/" included, so the
	// key travels as a query parameter rather than a path segment.
	Key string `query:"key" required:"true" minLength:"1" doc:"Shard key in canonical text form"`
}

type ResolveResponse struct {
	Key       string `json:"key" doc:"Canonical key text"`
	Shard     int    `json:"shard" doc:"Shard index in [0, num_shards)"`
	ShardName string `json:"shard_name" doc:"Configured shard name"`
}

type ResolveOutput struct {
	Body ResolveResponse
}

type ShardCountResponse struct {
	NumShards int `json:"num_shards" doc:"Fixed number of shards"`
}

type ShardCountOutput struct {
	Body ShardCountResponse
}

// --- Handler ---

// ResolveHandler exposes the resolver to operational tooling: which shard
// owns a key, and how many shards this process is configured with.
// Connection credentials are never echoed.
type ResolveHandler struct {
	res *resolver.Resolver
}

func NewResolveHandler(res *resolver.Resolver) *ResolveHandler {
	return &ResolveHandler{res: res}
}

func registerResolveRoutes(api huma.API, h *ResolveHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "resolve-key",
		Method:      http.MethodGet,
		Path:        "/v1/resolve",
		Summary:     "Resolve a key to its shard",
		Tags:        []string{"shards"},
	}, h.Resolve)

	huma.Register(api, huma.Operation{
		OperationID: "get-shard-count",
		Method:      http.MethodGet,
		Path:        "/v1/shards/count",
		Summary:     "Get the configured shard count",
		Tags:        []string{"shards"},
	}, h.ShardCount)
}

func (h *ResolveHandler) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	key := shardkey.FromString(input.Key)
	d, err := h.res.Resolve(key)
	if err != nil {
		return nil, huma.Error500InternalServerError("shard resolution failed")
	}
	return &ResolveOutput{Body: ResolveResponse{
		Key:       key.String(),
		Shard:     h.res.Index(key),
		ShardName: d.Name,
	}}, nil
}

func (h *ResolveHandler) ShardCount(ctx context.Context, _ *struct{}) (*ShardCountOutput, error) {
	return &ShardCountOutput{Body: ShardCountResponse{NumShards: h.res.Count()}}, nil
}
