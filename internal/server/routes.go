// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sigil-dev/lattice/internal/registry"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// ActionSummary is one registry entry as reported by the listing endpoint.
type ActionSummary struct {
	Category     string `json:"category" doc:"Registry category (retriever, indexer)"`
	Key          string `json:"key" doc:"provider/id registration key"`
	Name         string `json:"name" doc:"Operation name (retrieve, index)"`
	InputSchema  any    `json:"inputSchema,omitempty" doc:"JSON Schema for the action input"`
	OutputSchema any    `json:"outputSchema,omitempty" doc:"JSON Schema for the action output; absent for void actions"`
}

// ListActionsResponse wraps the registry snapshot.
type ListActionsResponse struct {
	Body struct {
		Actions []ActionSummary `json:"actions"`
	}
}

// RunActionInput invokes one registered action with a JSON payload.
type RunActionInput struct {
	Body struct {
		Category string `json:"category" enum:"retriever,indexer" doc:"Registry category"`
		Key      string `json:"key" doc:"provider/id registration key"`
		Input    any    `json:"input" doc:"Action input payload"`
	}
}

// RunActionResponse wraps an action's JSON output (null for void actions).
type RunActionResponse struct {
	Body struct {
		Result json.RawMessage `json:"result"`
	}
}

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-actions",
		Method:      http.MethodGet,
		Path:        "/api/v1/actions",
		Summary:     "List registered actions",
		Tags:        []string{"registry"},
	}, s.handleListActions)

	huma.Register(s.api, huma.Operation{
		OperationID: "run-action",
		Method:      http.MethodPost,
		Path:        "/api/v1/actions/run",
		Summary:     "Run a registered action",
		Tags:        []string{"registry"},
	}, s.handleRunAction)
}

func (s *Server) handleListActions(_ context.Context, _ *struct{}) (*ListActionsResponse, error) {
	entries := s.reg.List()

	resp := &ListActionsResponse{}
	resp.Body.Actions = make([]ActionSummary, 0, len(entries))
	for _, e := range entries {
		summary := ActionSummary{
			Category: string(e.Category),
			Key:      e.Key,
			Name:     e.Action.Name(),
		}
		if in := e.Action.InputSchema(); in != nil {
			summary.InputSchema = in.Huma()
		}
		if out := e.Action.OutputSchema(); out != nil {
			summary.OutputSchema = out.Huma()
		}
		resp.Body.Actions = append(resp.Body.Actions, summary)
	}
	return resp, nil
}

func (s *Server) handleRunAction(ctx context.Context, input *RunActionInput) (*RunActionResponse, error) {
	act, err := s.reg.Lookup(registry.Category(input.Body.Category), input.Body.Key)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}

	s.log.Debug("running action",
		"category", input.Body.Category,
		"key", input.Body.Key,
		"action", act.Name(),
	)

	raw, err := json.Marshal(input.Body.Input)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := act.RunJSON(ctx, raw)
	if err != nil {
		return nil, huma.NewError(latticeerr.HTTPStatus(err), err.Error())
	}

	resp := &RunActionResponse{}
	resp.Body.Result = result
	return resp, nil
}
