package opscmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-wasteops/internal/commands"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
)

const reportComplaintMessageType = "waste.complaint.report"

// ReportComplaintCommand records a resident complaint.
type ReportComplaintCommand struct {
	Neighborhood  string     `json:"neighborhood"`
	ComplaintType string     `json:"complaint_type"`
	Description   string     `json:"description,omitempty"`
	ContainerCode string     `json:"container_code,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

// Type implements command.Message.
func (ReportComplaintCommand) Type() string { return reportComplaintMessageType }

// Validate ensures required fields are present and the type is known.
func (m ReportComplaintCommand) Validate() error {
	errs := validation.Errors{}
	if m.Neighborhood == "" {
		errs["neighborhood"] = validation.NewError("waste.complaint.report.neighborhood_required", "neighborhood is required")
	}
	if _, ok := domain.ParseComplaintType(m.ComplaintType); !ok {
		errs["complaint_type"] = validation.NewError("waste.complaint.report.type_invalid", "complaint_type is not recognized")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReportComplaintHandler records complaints through the complaint service.
type ReportComplaintHandler struct {
	inner *commands.Handler[ReportComplaintCommand]
}

// NewReportComplaintHandler constructs a handler wired to the complaint service.
func NewReportComplaintHandler(service complaints.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ReportComplaintCommand]) *ReportComplaintHandler {
	exec := func(ctx context.Context, msg ReportComplaintCommand) error {
		complaintType, _ := domain.ParseComplaintType(msg.ComplaintType)
		_, err := service.Report(ctx, complaints.ReportComplaintRequest{
			Neighborhood:  msg.Neighborhood,
			Type:          complaintType,
			Description:   msg.Description,
			ContainerCode: msg.ContainerCode,
			SubmittedAt:   msg.SubmittedAt,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ReportComplaintCommand]{
		commands.WithLogger[ReportComplaintCommand](logger),
		commands.WithOperation[ReportComplaintCommand]("complaint.report"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReportComplaintHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReportComplaintCommand].
func (h *ReportComplaintHandler) Execute(ctx context.Context, msg ReportComplaintCommand) error {
	return h.inner.Execute(ctx, msg)
}
