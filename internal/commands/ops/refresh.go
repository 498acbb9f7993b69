package opscmd

import (
	"context"

	"github.com/goliatone/go-wasteops/internal/commands"
	"github.com/goliatone/go-wasteops/internal/ingest"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
)

const refreshDataMessageType = "waste.ingest.refresh"

// RefreshDataCommand re-imports the upstream container dataset.
type RefreshDataCommand struct {
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (RefreshDataCommand) Type() string { return refreshDataMessageType }

// Validate implements command.Message. A refresh carries no required fields.
func (RefreshDataCommand) Validate() error { return nil }

// RefreshDataHandler triggers a dataset refresh through the ingest service.
type RefreshDataHandler struct {
	inner *commands.Handler[RefreshDataCommand]
}

// NewRefreshDataHandler constructs a handler wired to the provided ingest service.
func NewRefreshDataHandler(service ingest.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshDataCommand]) *RefreshDataHandler {
	exec := func(ctx context.Context, msg RefreshDataCommand) error {
		_, err := service.Refresh(ctx, ingest.RefreshOptions{Force: msg.Force})
		return err
	}

	handlerOpts := []commands.HandlerOption[RefreshDataCommand]{
		commands.WithLogger[RefreshDataCommand](logger),
		commands.WithOperation[RefreshDataCommand]("ingest.refresh"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshDataHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RefreshDataCommand].
func (h *RefreshDataHandler) Execute(ctx context.Context, msg RefreshDataCommand) error {
	return h.inner.Execute(ctx, msg)
}
