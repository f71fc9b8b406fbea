package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateTaskTool(srv, svc)
	registerRequestTaskTool(srv, svc)
	registerNotifyTool(srv, svc)
	registerBrainDumpTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerCycleStatusTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerAddSubtaskTool(srv, svc)
	registerToggleSubtaskTool(srv, svc)
	registerFocusTools(srv, svc)
	registerNotificationTools(srv, svc)
	registerStatsTool(srv, svc)
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a todo task."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
		mcp.WithString("category",
			mcp.Description("Task category (default work)."),
			mcp.Enum("work", "dev", "personal", "urgent", "research"),
		),
		mcp.WithString("priority",
			mcp.Description("1-4 or low, medium, high, critical (default medium)."),
		),
		mcp.WithString("notes",
			mcp.Description("Optional free text notes."),
		),
		mcp.WithString("due",
			mcp.Description("Optional due date, YYYY-MM-DD or M/D."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text     string `json:"text"`
			Category string `json:"category"`
			Priority string `json:"priority"`
			Notes    string `json:"notes"`
			Due      string `json:"due"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		t, err := svc.CreateTask(ctx, CreateTaskOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerRequestTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"request_task",
		mcp.WithDescription("Publish an add-task request on the command bus. The task is filed as work at medium priority and a notification reports the outcome."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
		mcp.WithString("source",
			mcp.Description("Who is asking; recorded in the task notes."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.RequestTask(ctx, text, request.GetString("source", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("published"), nil
	})
}

func registerNotifyTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"notify",
		mcp.WithDescription("Publish a notification on the command bus."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short headline."),
		),
		mcp.WithString("message",
			mcp.Description("Optional body."),
		),
		mcp.WithString("type",
			mcp.Description("Severity (default info)."),
			mcp.Enum("info", "success", "warning", "error"),
		),
		mcp.WithString("source",
			mcp.Description("Who is notifying."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		err = svc.Notify(ctx, title,
			request.GetString("message", ""),
			request.GetString("type", ""),
			request.GetString("source", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("published"), nil
	})
}

func registerBrainDumpTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"brain_dump",
		mcp.WithDescription("Create one task per line of free text. Bullet markers are stripped and blank lines skipped."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Newline separated items."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		added, err := svc.BrainDump(ctx, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": added,
			"count": len(added),
		})
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, highest priority first."),
		mcp.WithString("status",
			mcp.Description("Only tasks with this status."),
			mcp.Enum("todo", "in-progress", "done"),
		),
		mcp.WithString("category",
			mcp.Description("Only tasks in this category."),
			mcp.Enum("work", "dev", "personal", "urgent", "research"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := svc.ListTasks(ctx, request.GetString("status", ""), request.GetString("category", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

// registerIDTool covers the tools that take a single task id.
func registerIDTool(srv *server.MCPServer, name, description string, fn func(ctx context.Context, id string) (any, error)) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id or a unique id prefix."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := fn(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(out)
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv, "get_task", "Fetch a single task.", func(ctx context.Context, id string) (any, error) {
		return svc.Task(ctx, id)
	})
}

func registerCycleStatusTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv, "cycle_status", "Advance a task todo -> in-progress -> done -> todo.", func(ctx context.Context, id string) (any, error) {
		return svc.CycleStatus(ctx, id)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv, "delete_task", "Delete a task. Focus time not yet committed is lost.", func(ctx context.Context, id string) (any, error) {
		return svc.DeleteTask(ctx, id)
	})
}

func registerAddSubtaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_subtask",
		mcp.WithDescription("Append a checklist item to a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id or a unique id prefix."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Checklist item."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.AddSubtask(ctx, id, request.GetString("title", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerToggleSubtaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_subtask",
		mcp.WithDescription("Flip a checklist item between open and done."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id or a unique id prefix."),
		),
		mcp.WithString("subtask_id",
			mcp.Required(),
			mcp.Description("Checklist item id."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		subtaskID, err := request.RequireString("subtask_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.ToggleSubtask(ctx, id, subtaskID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerFocusTools(srv *server.MCPServer, svc *Service) {
	registerIDTool(srv, "start_focus", "Start the focus timer on a task. Starting the focused task again stops it.", func(ctx context.Context, id string) (any, error) {
		return svc.StartFocus(ctx, id)
	})

	stop := mcp.NewTool("stop_focus", mcp.WithDescription("Stop the focus timer and commit the elapsed seconds."))
	srv.AddTool(stop, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.StopFocus(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})

	toggle := mcp.NewTool("toggle_focus", mcp.WithDescription("Pause or resume the focus timer."))
	srv.AddTool(toggle, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.ToggleFocus(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerNotificationTools(srv *server.MCPServer, svc *Service) {
	list := mcp.NewTool(
		"list_notifications",
		mcp.WithDescription("List notifications, newest first."),
		mcp.WithBoolean("unread_only",
			mcp.Description("Only unread notifications."),
		),
	)
	srv.AddTool(list, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := svc.Notifications(ctx, request.GetBool("unread_only", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"notifications": items,
			"count":         len(items),
		})
	})

	read := mcp.NewTool(
		"mark_read",
		mcp.WithDescription("Mark a notification read, or all of them when no id is given."),
		mcp.WithString("id",
			mcp.Description("Notification id or a unique id prefix."),
		),
	)
	srv.AddTool(read, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		unread, err := svc.MarkRead(ctx, request.GetString("id", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]int{"unread": unread})
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("stats", mcp.WithDescription("Task counts by status, unread notifications and the focus timer."))
	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s, err := svc.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(s)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
