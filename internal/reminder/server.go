package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminder"
	serverVersion = "1.0.0"
)

// Snoozer is the slice of the snooze coordinator the MCP server needs:
// inspecting, snoozing and dismissing the currently-notifying reminder.
type Snoozer interface {
	Active() (int64, bool)
	Snooze(minutes int) (*Reminder, error)
	Clear()
}

// CheckFunc runs one scheduler sweep synchronously.
type CheckFunc func(ctx context.Context) error

// Server is the MCP server for reminder management. It exposes the
// store's CRUD operations plus the snooze actions, so an MCP client
// can act as the foreground layer.
type Server struct {
	mcpServer *server.MCPServer
	store     *Store
	snoozer   Snoozer
	check     CheckFunc
}

// NewServer creates a new Reminder MCP server backed by the given
// store. snoozer and check may be nil; the matching tools then report
// that the feature is unavailable.
func NewServer(store *Store, snoozer Snoozer, check CheckFunc) *Server {
	s := &Server{
		store:   store,
		snoozer: snoozer,
		check:   check,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// add_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a new reminder with a title, due date and optional description"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("due_date", mcp.Required(), mcp.Description("Due date in RFC3339 format (e.g. 2025-01-15T09:00:00Z) or '2025-01-15 09:00'")),
			mcp.WithString("description", mcp.Description("Optional description")),
		),
		s.handleAddReminder,
	)

	// list_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders sorted by due date, optionally filtered by status"),
			mcp.WithString("status", mcp.Description("Filter: all, pending, completed, overdue or cancelled (default: all)")),
			mcp.WithString("order", mcp.Description("Sort order by due date: asc or desc (default: asc)")),
		),
		s.handleListReminders,
	)

	// get_due_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("get_due_reminders",
			mcp.WithDescription("Get all pending reminders whose due time has already passed"),
		),
		s.handleGetDueReminders,
	)

	// update_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's title, description or due date; omitted fields keep their value"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder ID")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("due_date", mcp.Description("New due date in RFC3339 format")),
		),
		s.handleUpdateReminder,
	)

	// complete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Mark a reminder as completed"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleCompleteReminder,
	)

	// cancel_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("cancel_reminder",
			mcp.WithDescription("Mark a reminder as cancelled without deleting it"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleCancelReminder,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDeleteReminder,
	)

	// snooze_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("snooze_reminder",
			mcp.WithDescription("Postpone the currently-notifying reminder and set it back to pending"),
			mcp.WithNumber("minutes", mcp.Description("Minutes to postpone, e.g. 15, 30, 45 or 60 (default: 15)")),
		),
		s.handleSnoozeReminder,
	)

	// dismiss_notification
	s.mcpServer.AddTool(
		mcp.NewTool("dismiss_notification",
			mcp.WithDescription("Discard the currently-notifying reminder without snoozing it"),
		),
		s.handleDismissNotification,
	)

	// active_notification
	s.mcpServer.AddTool(
		mcp.NewTool("active_notification",
			mcp.WithDescription("Show the reminder whose notification is currently awaiting a snooze decision"),
		),
		s.handleActiveNotification,
	)

	// check_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("check_reminders",
			mcp.WithDescription("Run one reminder sweep now: reclassify overdue reminders and fire the due ones"),
		),
		s.handleCheckReminders,
	)
}

func (s *Server) handleAddReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	dueDateStr := req.GetString("due_date", "")
	description := req.GetString("description", "")

	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	if dueDateStr == "" {
		return mcp.NewToolResultError("due_date is required"), nil
	}

	dueAt, err := ParseDueTime(dueDateStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := s.store.Add(title, description, dueAt)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	added, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read back reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter, err := ParseFilter(req.GetString("status", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	order, err := ParseSortOrder(req.GetString("order", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reminders, err := s.store.List(filter, order)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	output, _ := json.MarshalIndent(reminders, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGetDueReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pending, err := s.store.List(FilterStatus(StatusPending), SortAscending)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get due reminders: %v", err)), nil
	}

	now := time.Now()
	var due []Reminder
	for _, r := range pending {
		if r.Due(now) {
			due = append(due, r)
		}
	}

	if len(due) == 0 {
		return mcp.NewToolResultText("No due reminders."), nil
	}

	output, _ := json.MarshalIndent(due, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleUpdateReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := requestID(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive number"), nil
	}

	current, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}

	title := current.Title
	description := current.Description
	dueAt := current.DueAt

	if v := req.GetString("title", ""); v != "" {
		title = v
	}
	if v := req.GetString("description", ""); v != "" {
		description = v
	}
	if v := req.GetString("due_date", ""); v != "" {
		t, err := ParseDueTime(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dueAt = t
	}

	if err := s.store.Update(id, title, description, dueAt); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}

	updated, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read back reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(updated, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleCompleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := requestID(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive number"), nil
	}

	if err := s.store.SetStatus(id, StatusCompleted); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d marked as completed.", id)), nil
}

func (s *Server) handleCancelReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := requestID(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive number"), nil
	}

	if err := s.store.SetStatus(id, StatusCancelled); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to cancel reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d cancelled.", id)), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := requestID(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive number"), nil
	}

	if err := s.store.Delete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d deleted.", id)), nil
}

func (s *Server) handleSnoozeReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.snoozer == nil {
		return mcp.NewToolResultError("snooze is not available on this server"), nil
	}

	minutes := int(req.GetFloat("minutes", 15))

	snoozed, err := s.snoozer.Snooze(minutes)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to snooze reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(snoozed, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleDismissNotification(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.snoozer == nil {
		return mcp.NewToolResultError("snooze is not available on this server"), nil
	}

	s.snoozer.Clear()
	return mcp.NewToolResultText("Active notification dismissed."), nil
}

func (s *Server) handleActiveNotification(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.snoozer == nil {
		return mcp.NewToolResultError("snooze is not available on this server"), nil
	}

	id, ok := s.snoozer.Active()
	if !ok {
		return mcp.NewToolResultText("No notification is currently active."), nil
	}

	r, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load active reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(r, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleCheckReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.check == nil {
		return mcp.NewToolResultError("reminder checking is not available on this server"), nil
	}

	if err := s.check(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to check reminders: %v", err)), nil
	}

	return mcp.NewToolResultText("Reminder sweep completed."), nil
}

// requestID extracts the id argument shared by the per-reminder tools.
func requestID(req mcp.CallToolRequest) (int64, bool) {
	idFloat := req.GetFloat("id", 0)
	if idFloat <= 0 {
		return 0, false
	}
	return int64(idFloat), true
}
