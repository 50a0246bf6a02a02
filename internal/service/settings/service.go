package settings

import (
	"context"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/pkg/validator"
)

// Service is the administrative surface over the two compliance settings:
// the office geofence and the shift policy. Updates only affect attempts
// classified after they land.
type Service interface {
	GetOfficeLocation(ctx context.Context) (office.LocationResponse, error)
	UpdateOfficeLocation(ctx context.Context, req office.UpdateLocationRequest) (office.LocationResponse, error)
	GetShiftPolicy(ctx context.Context) (shift.PolicyResponse, error)
	UpdateShiftPolicy(ctx context.Context, req shift.UpdatePolicyRequest) (shift.PolicyResponse, error)
}

type settingsService struct {
	offices office.LocationRepository
	shifts  shift.PolicyRepository
}

func NewSettingsService(offices office.LocationRepository, shifts shift.PolicyRepository) Service {
	return &settingsService{offices: offices, shifts: shifts}
}

// GetOfficeLocation implements Service.
func (s *settingsService) GetOfficeLocation(ctx context.Context) (office.LocationResponse, error) {
	loc, err := s.offices.Get(ctx)
	if err != nil {
		return office.LocationResponse{}, err
	}
	return mapLocation(loc), nil
}

// UpdateOfficeLocation implements Service.
func (s *settingsService) UpdateOfficeLocation(ctx context.Context, req office.UpdateLocationRequest) (office.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.LocationResponse{}, err
	}

	loc, err := s.offices.Upsert(ctx, office.Location{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		RadiusMeters: req.RadiusMeters,
	})
	if err != nil {
		return office.LocationResponse{}, err
	}

	return mapLocation(loc), nil
}

// GetShiftPolicy implements Service.
func (s *settingsService) GetShiftPolicy(ctx context.Context) (shift.PolicyResponse, error) {
	policy, err := s.shifts.Get(ctx)
	if err != nil {
		return shift.PolicyResponse{}, err
	}
	return mapPolicy(policy), nil
}

// UpdateShiftPolicy implements Service.
func (s *settingsService) UpdateShiftPolicy(ctx context.Context, req shift.UpdatePolicyRequest) (shift.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.PolicyResponse{}, err
	}

	startTime, _ := validator.IsValidClockTime(req.StartTime)

	policy, err := s.shifts.Upsert(ctx, shift.Policy{
		StartTime:     startTime,
		GraceMinutes:  req.GraceMinutes,
		StandardHours: req.StandardHours,
	})
	if err != nil {
		return shift.PolicyResponse{}, err
	}

	return mapPolicy(policy), nil
}

func mapLocation(loc office.Location) office.LocationResponse {
	return office.LocationResponse{
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		Address:      loc.Address,
		RadiusMeters: loc.RadiusMeters,
		UpdatedAt:    loc.UpdatedAt.Format(time.RFC3339),
	}
}

func mapPolicy(policy shift.Policy) shift.PolicyResponse {
	return shift.PolicyResponse{
		StartTime:     policy.StartTime.Format("15:04:05"),
		GraceMinutes:  policy.GraceMinutes,
		StandardHours: policy.StandardHours,
		UpdatedAt:     policy.UpdatedAt.Format(time.RFC3339),
	}
}
