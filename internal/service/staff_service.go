package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

// StaffService covers the administrative surface: creating staff accounts,
// kiosk credentials, password resets, client invitations, and the access
// request queue.
type StaffService struct {
	profiles   repository.ProfileRepository
	clients    repository.ClientRepository
	requests   repository.AccessRequestRepository
	bcryptCost int
}

// StaffDependencies bundles requirements.
type StaffDependencies struct {
	ProfileRepo repository.ProfileRepository
	ClientRepo  repository.ClientRepository
	RequestRepo repository.AccessRequestRepository
	BcryptCost  int
}

// NewStaffService builds the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	return &StaffService{
		profiles:   deps.ProfileRepo,
		clients:    deps.ClientRepo,
		requests:   deps.RequestRepo,
		bcryptCost: deps.BcryptCost,
	}
}

var adminRoles = map[domain.Role]struct{}{
	domain.RoleSuperadmin: {},
	domain.RoleAdmin:      {},
}

// CreateStaffInput describes a new staff account.
type CreateStaffInput struct {
	FullName     string
	Email        string
	Password     string
	Role         string
	Position     string
	EmployeeCode string
	PIN          string
}

// CreateStaff creates a portal or kiosk staff account.
func (s *StaffService) CreateStaff(ctx context.Context, actor Actor, input CreateStaffInput) (*domain.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if role == domain.RoleSuperadmin && actor.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("only superadmin can create superadmin accounts")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, apperrors.NewValidationError("full_name required", nil)
	}

	profile := &domain.Profile{
		FullName: strings.TrimSpace(input.FullName),
		Role:     role,
		Position: domain.ParsePosition(input.Position),
		Active:   true,
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		profile.Email = &email
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		profile.PasswordHash = &hash
	}
	if code := strings.TrimSpace(input.EmployeeCode); code != "" {
		profile.EmployeeCode = &code
	}
	if input.PIN != "" {
		if profile.EmployeeCode == nil {
			return nil, apperrors.NewValidationError("employee_code required for kiosk PIN", nil)
		}
		hash, err := auth.HashPIN(input.PIN, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		profile.PINHash = &hash
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// UpdatePassword force-sets a staff password, admin side.
func (s *StaffService) UpdatePassword(ctx context.Context, actor Actor, profileID, newPassword string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("profile", map[string]any{"profile_id": profileID})
		}
		return apperrors.MapError(err)
	}
	if profile.Role == domain.RoleSuperadmin && actor.Role != domain.RoleSuperadmin {
		return apperrors.NewForbidden("only superadmin can reset superadmin passwords")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	profile.PasswordHash = &hash
	return apperrors.MapError(s.profiles.Update(ctx, profile))
}

// ListStaff returns staff profiles.
func (s *StaffService) ListStaff(ctx context.Context, filter repository.ProfileFilter) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profiles, nil
}

// InviteClient creates a client account with a temporary password.
func (s *StaffService) InviteClient(ctx context.Context, actor Actor, email, fullName, organization, tempPassword string) (*domain.Client, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(organization) == "" {
		return nil, apperrors.NewValidationError("email and organization required", nil)
	}
	if _, err := s.clients.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("client already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	client := &domain.Client{
		Organization: strings.TrimSpace(organization),
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		Status:       domain.ClientStatusPending,
	}
	if tempPassword != "" {
		hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		client.PasswordHash = &hash
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// SubmitAccessRequest queues a self-service signup for approval. Public.
func (s *StaffService) SubmitAccessRequest(ctx context.Context, email, fullName, organization, phone string) (*domain.AccessRequest, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(organization) == "" {
		return nil, apperrors.NewValidationError("email and organization required", nil)
	}
	request := &domain.AccessRequest{
		Email:        strings.TrimSpace(email),
		FullName:     strings.TrimSpace(fullName),
		Organization: strings.TrimSpace(organization),
		Phone:        strings.TrimSpace(phone),
		Status:       domain.AccessRequestPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// ListAccessRequests returns the pending queue.
func (s *StaffService) ListAccessRequests(ctx context.Context, actor Actor, limit, offset int) ([]domain.AccessRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// ApproveAccessRequest turns a pending request into an active client bound
// to a coordinator.
func (s *StaffService) ApproveAccessRequest(ctx context.Context, actor Actor, requestID, coordinatorID, tempPassword string) (*domain.Client, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("access request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	if request.Status != domain.AccessRequestPending {
		return nil, apperrors.NewConflict("request already resolved", map[string]any{"request_id": requestID})
	}

	client := &domain.Client{
		Organization:  request.Organization,
		FullName:      request.FullName,
		Email:         request.Email,
		Phone:         request.Phone,
		CoordinatorID: optionalID(coordinatorID),
		Status:        domain.ClientStatusActive,
	}
	if client.CoordinatorID == nil {
		client.Status = domain.ClientStatusPending
	}
	if tempPassword != "" {
		hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		client.PasswordHash = &hash
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.requests.Resolve(ctx, requestID, domain.AccessRequestApproved); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// RejectAccessRequest resolves a pending request negatively.
func (s *StaffService) RejectAccessRequest(ctx context.Context, actor Actor, requestID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.requests.Resolve(ctx, requestID, domain.AccessRequestRejected); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("access request", map[string]any{"request_id": requestID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func requireAdmin(actor Actor) error {
	if _, ok := adminRoles[actor.Role]; !ok {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}
