package handlers

import (
	"github.com/spec-kit/field-service/internal/api/dto"
	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/policy"
	"github.com/spec-kit/field-service/internal/service"
)

func actorFrom(principal *auth.Principal) service.Actor {
	return service.Actor{
		ID:   principal.ActorID(),
		Name: principal.ActorName(),
		Role: principal.Role,
	}
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:            ticket.ID,
		ServiceCode:   ticket.ServiceCode,
		ServiceType:   ticket.ServiceType,
		Status:        ticket.Status,
		ClientID:      ticket.ClientID,
		Company:       ticket.Company,
		CoordinatorID: ticket.CoordinatorID,
		LeaderID:      ticket.LeaderID,
		AuxiliaryID:   ticket.AuxiliaryID,
		ScheduledDate: ticket.ScheduledDate,
		Location:      ticket.Location,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

// ticketDetail maps the full aggregate for the given role. Internal
// evaluation fields are stripped for roles without sensitive access.
func ticketDetail(ticket *domain.Ticket, role domain.Role) dto.TicketDetailResponse {
	logs := make([]dto.LogEntryResponse, 0, len(ticket.Logs))
	for _, entry := range ticket.Logs {
		logs = append(logs, dto.LogEntryResponse{
			Date: entry.Date,
			User: entry.User,
			Role: entry.Role,
			Type: entry.Type,
			Note: entry.Note,
		})
	}
	resp := dto.TicketDetailResponse{
		TicketSummary:      ticketSummary(ticket),
		ClientEmail:        ticket.ClientEmail,
		Description:        ticket.Description,
		TechnicalResult:    ticket.TechnicalResult,
		ServiceDoneComment: ticket.ServiceDoneComment,
		AdditionalDetails:  ticket.AdditionalDetails,
		SatisfactionRating: ticket.SatisfactionRating,
		ClientFeedback:     ticket.ClientFeedback,
		Rated:              ticket.Rated,
		Logs:               logs,
		Capabilities: &dto.TicketCapabilities{
			Editable:          policy.IsEditable(ticket, role),
			AllowedStatuses:   policy.AllowedStatuses(role, ticket.Status),
			CanAssignLeader:   policy.CanAssign(role, policy.FieldLeader),
			CanAssignCoord:    policy.CanAssign(role, policy.FieldCoordinator),
			CanAssignSchedule: policy.CanAssign(role, policy.FieldSchedule),
		},
	}
	if policy.CanSeeSensitive(role) {
		resp.ClientAudit = ticket.ClientAudit
	}
	return resp
}

func profileSummary(profile *domain.Profile) dto.ProfileSummary {
	return dto.ProfileSummary{
		ID:           profile.ID,
		FullName:     profile.FullName,
		Email:        profile.Email,
		Role:         profile.Role,
		Position:     profile.Position,
		EmployeeCode: profile.EmployeeCode,
		Active:       profile.Active,
	}
}

func clientSummary(client *domain.Client) dto.ClientSummary {
	return dto.ClientSummary{
		ID:            client.ID,
		Organization:  client.Organization,
		FullName:      client.FullName,
		Email:         client.Email,
		Phone:         client.Phone,
		CoordinatorID: client.CoordinatorID,
		Status:        client.Status,
		BlockedUntil:  client.BlockedUntil,
		BlockReason:   client.BlockReason,
	}
}

func assetResponse(asset *domain.Asset) dto.AssetResponse {
	return dto.AssetResponse{
		ID:              asset.ID,
		Identifier:      asset.Identifier,
		SerialNumber:    asset.SerialNumber,
		Name:            asset.Name,
		Status:          asset.Status,
		LocationDetails: asset.LocationDetails,
		ClientID:        asset.ClientID,
		CreatedAt:       asset.CreatedAt,
		UpdatedAt:       asset.UpdatedAt,
	}
}

func accessRequestResponse(request *domain.AccessRequest) dto.AccessRequestResponse {
	return dto.AccessRequestResponse{
		ID:           request.ID,
		Email:        request.Email,
		FullName:     request.FullName,
		Organization: request.Organization,
		Phone:        request.Phone,
		Status:       string(request.Status),
		CreatedAt:    request.CreatedAt,
		ResolvedAt:   request.ResolvedAt,
	}
}

func attendanceLogResponse(log *domain.AttendanceLog) *dto.AttendanceLogResponse {
	if log == nil {
		return nil
	}
	return &dto.AttendanceLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		CheckType: log.CheckType,
		Latitude:  log.Latitude,
		Longitude: log.Longitude,
		PhotoURL:  log.PhotoURL,
		Notes:     log.Notes,
		CreatedAt: log.CreatedAt,
	}
}

func attendanceDayResponses(days []domain.AttendanceDay) []dto.AttendanceDayResponse {
	out := make([]dto.AttendanceDayResponse, 0, len(days))
	for i := range days {
		day := days[i]
		out = append(out, dto.AttendanceDayResponse{
			UserID:  day.UserID,
			Date:    day.Date,
			Entrada: attendanceLogResponse(day.Entrada),
			Salida:  attendanceLogResponse(day.Salida),
		})
	}
	return out
}
