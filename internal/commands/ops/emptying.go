package opscmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-wasteops/internal/commands"
	"github.com/goliatone/go-wasteops/internal/jobs"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
	"github.com/google/uuid"
)

const requestEmptyingMessageType = "waste.container.request_emptying"

// RequestEmptyingCommand schedules a crew visit for one container.
type RequestEmptyingCommand struct {
	ContainerID uuid.UUID  `json:"container_id"`
	RunAt       *time.Time `json:"run_at,omitempty"`
}

// Type implements command.Message.
func (RequestEmptyingCommand) Type() string { return requestEmptyingMessageType }

// Validate ensures required fields are present.
func (m RequestEmptyingCommand) Validate() error {
	errs := validation.Errors{}
	if m.ContainerID == uuid.Nil {
		errs["container_id"] = validation.NewError("waste.container.request_emptying.container_id_required", "container_id is required")
	}
	if m.RunAt != nil && m.RunAt.IsZero() {
		errs["run_at"] = validation.NewError("waste.container.request_emptying.run_at_invalid", "run_at must be a valid timestamp when provided")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RequestEmptyingHandler enqueues the emptying job through the worker.
type RequestEmptyingHandler struct {
	inner *commands.Handler[RequestEmptyingCommand]
}

// NewRequestEmptyingHandler constructs a handler wired to the job worker.
func NewRequestEmptyingHandler(worker *jobs.Worker, logger interfaces.Logger, opts ...commands.HandlerOption[RequestEmptyingCommand]) *RequestEmptyingHandler {
	exec := func(ctx context.Context, msg RequestEmptyingCommand) error {
		runAt := time.Time{}
		if msg.RunAt != nil {
			runAt = *msg.RunAt
		}
		_, err := worker.RequestEmptying(ctx, msg.ContainerID, runAt)
		return err
	}

	handlerOpts := []commands.HandlerOption[RequestEmptyingCommand]{
		commands.WithLogger[RequestEmptyingCommand](logger),
		commands.WithOperation[RequestEmptyingCommand]("container.request_emptying"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RequestEmptyingHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RequestEmptyingCommand].
func (h *RequestEmptyingHandler) Execute(ctx context.Context, msg RequestEmptyingCommand) error {
	return h.inner.Execute(ctx, msg)
}
