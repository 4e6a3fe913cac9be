package org

import "context"

// TaskResult is what a task executor reports back after running a work item.
type TaskResult struct {
	TaskID  string
	Success bool
	Output  string
}

// TaskExecutor is the outward-facing collaborator that actually runs work.
// The registries and the Coordinator never call it; orchestration layers
// resolve eligible units through Coordinator queries, execute through this
// interface, and report outcomes back via AssignTask status updates.
type TaskExecutor interface {
	ExecuteTask(ctx context.Context, taskType, projectID string) (TaskResult, error)
}
