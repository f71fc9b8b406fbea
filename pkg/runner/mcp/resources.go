package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTasksResource(srv, svc)
	registerNotificationsResource(srv, svc)
	registerTaskTemplate(srv, svc)
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"cmdcenter://tasks",
		"Tasks",
		mcp.WithResourceDescription("Every task with the derived counters."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks, err := svc.ListTasks(ctx, "", "")
		if err != nil {
			return nil, err
		}
		stats, err := svc.Stats(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"tasks": tasks,
			"stats": stats,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerNotificationsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"cmdcenter://notifications",
		"Notifications",
		mcp.WithResourceDescription("The notification log, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		items, err := svc.Notifications(ctx, false)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"notifications": items,
			"count":         len(items),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTaskTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"cmdcenter://tasks/{id}",
		"Task Details",
		mcp.WithTemplateDescription("A single task with notes and subtasks."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("task id is required")
		}
		t, err := svc.Task(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"task": t})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
