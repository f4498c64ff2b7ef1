package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shardmux/shardmux/internal/circuitbreaker"
	"github.com/shardmux/shardmux/internal/metrics"
	"github.com/shardmux/shardmux/internal/resolver"
	"github.com/shardmux/shardmux/internal/shardkey"
	"github.com/shardmux/shardmux/internal/storage"
)

// --- Huma Input/Output types ---

type CreateUserBody struct {
	ID   int64  `json:"id" doc:"User ID, also the shard key" required:"true"`
	Name string `json:"name" doc:"Display name" required:"true" minLength:"1"`
}

type CreateUserInput struct {
	Body CreateUserBody
}

type UserResponse struct {
	ID        int64     `json:"id" doc:"User ID"`
	Name      string    `json:"name" doc:"Display name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	Shard     int       `json:"shard" doc:"Shard index the user is stored on"`
}

type CreateUserOutput struct {
	Body UserResponse
}

type GetUserInput struct {
	ID int64 `path:"id" doc:"User ID"`
}

type GetUserOutput struct {
	Body UserResponse
}

// --- Handler ---

// UserHandler serves the user endpoints. Every request resolves its shard
// through the canonical resolver; there is deliberately no other placement
// computation anywhere in the request path.
type UserHandler struct {
	res    *resolver.Resolver
	stores []storage.UserStore
	logger *slog.Logger
}

func NewUserHandler(res *resolver.Resolver, stores []storage.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{res: res, stores: stores, logger: logger}
}

func registerUserRoutes(api huma.API, h *UserHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Method:        http.MethodPost,
		Path:          "/v1/users",
		Summary:       "Create a user on its shard",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateUser)

	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/v1/users/{id}",
		Summary:     "Get a user from its shard",
		Tags:        []string{"users"},
	}, h.GetUser)
}

// storeFor returns the store for a shard index. Failing here means the
// store list does not match the registry — a wiring bug, not bad input.
func (h *UserHandler) storeFor(idx int) (storage.UserStore, error) {
	if idx < 0 || idx >= len(h.stores) {
		return nil, huma.Error500InternalServerError("shard routing failed")
	}
	return h.stores[idx], nil
}

func (h *UserHandler) CreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	idx := h.res.Index(shardkey.FromInt(input.Body.ID))
	metrics.ObserveResolution(idx)

	store, err := h.storeFor(idx)
	if err != nil {
		h.logger.Error("shard routing failed", "shard", idx, "user_id", input.Body.ID)
		return nil, err
	}

	u, err := store.CreateUser(ctx, input.Body.ID, input.Body.Name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserExists):
			return nil, huma.Error409Conflict("user already exists")
		case errors.Is(err, circuitbreaker.ErrCircuitOpen):
			return nil, huma.Error503ServiceUnavailable("shard unavailable")
		}
		h.logger.Error("failed to create user", "user_id", input.Body.ID, "shard", idx, "error", err)
		return nil, huma.Error500InternalServerError("failed to create user")
	}

	return &CreateUserOutput{Body: userToResponse(u, idx)}, nil
}

func (h *UserHandler) GetUser(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
	idx := h.res.Index(shardkey.FromInt(input.ID))
	metrics.ObserveResolution(idx)

	store, err := h.storeFor(idx)
	if err != nil {
		h.logger.Error("shard routing failed", "shard", idx, "user_id", input.ID)
		return nil, err
	}

	u, err := store.GetUser(ctx, input.ID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, huma.Error404NotFound("user not found")
		case errors.Is(err, circuitbreaker.ErrCircuitOpen):
			return nil, huma.Error503ServiceUnavailable("shard unavailable")
		}
		h.logger.Error("failed to get user", "user_id", input.ID, "shard", idx, "error", err)
		return nil, huma.Error500InternalServerError("failed to get user")
	}

	return &GetUserOutput{Body: userToResponse(u, idx)}, nil
}

func userToResponse(u *storage.User, shard int) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		Shard:     shard,
	}
}
