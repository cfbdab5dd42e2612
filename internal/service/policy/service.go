package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	staffClient "github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
	"github.com/katiabooking/KB-BookingService/internal/service/policy/models"
)

// Service сервис для работы с политиками бронирования
type Service struct {
	policyRepo  PolicyRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(
	policyRepo PolicyRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:  policyRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// GetEffective получает действующую политику для салона/мастера.
// Публичный метод - доступен всем. Если политика не настроена ни на одном
// уровне иерархии, возвращает дефолтную
func (s *Service) GetEffective(ctx context.Context, salonID int64, masterID *int64) (*models.PolicyResponse, error) {
	s.logger.Info("GetEffective: fetching policy for salon=%d, master=%v", salonID, masterID)

	policy, err := s.policyRepo.GetWithHierarchy(ctx, salonID, masterID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return models.FromDomainPolicy(domain.DefaultPolicy(salonID)), nil
		}
		s.logger.Error("GetEffective: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy), nil
}

// GetAllBySalon получает все политики салона (уровня салона и уровня мастеров)
// Доступно только сотрудникам салона
func (s *Service) GetAllBySalon(ctx context.Context, salonID int64, userID int64) (*models.PolicyListResponse, error) {
	s.logger.Info("GetAllBySalon: fetching policies for salon=%d by user=%d", salonID, userID)

	if err := s.checkStaffAccess(ctx, salonID, userID); err != nil {
		return nil, err
	}

	policies, err := s.policyRepo.GetAllBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("GetAllBySalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetAllBySalon - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicyList(policies), nil
}

// Upsert создает или обновляет политику салона/мастера
// Доступно только сотрудникам салона
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: upserting policy for salon=%d, master=%v by user=%d",
		req.SalonID, req.MasterID, req.UserID)

	// 1. Проверяем права доступа
	if err := s.checkStaffAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Если политика уровня мастера - мастер должен существовать в этом салоне
	if req.MasterID != nil {
		master, err := s.staffClient.GetMaster(ctx, *req.MasterID)
		if err != nil {
			if errors.Is(err, staffClient.ErrMasterNotFound) {
				s.logger.Warn("Upsert: master id=%d not found", *req.MasterID)
				return nil, ErrMasterNotFound
			}
			s.logger.Error("Upsert: failed to get master id=%d: %v", *req.MasterID, err)
			return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
		}
		if master.SalonID != req.SalonID {
			s.logger.Warn("Upsert: master id=%d does not belong to salon=%d", *req.MasterID, req.SalonID)
			return nil, fmt.Errorf("%w: master does not belong to salon", ErrInvalidInput)
		}
	}

	// 3. Валидируем инварианты политики
	policy := req.ToDomainPolicy()
	if err := policy.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохраняем
	saved, err := s.policyRepo.Upsert(ctx, policy)
	if err != nil {
		s.logger.Error("Upsert: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved policy id=%d", saved.ID)
	return models.FromDomainPolicy(saved), nil
}

// Delete удаляет политику салона/мастера
// Доступно только сотрудникам салона
func (s *Service) Delete(ctx context.Context, salonID int64, masterID *int64, userID int64) error {
	s.logger.Info("Delete: deleting policy for salon=%d, master=%v by user=%d", salonID, masterID, userID)

	if err := s.checkStaffAccess(ctx, salonID, userID); err != nil {
		return err
	}

	if err := s.policyRepo.Delete(ctx, salonID, masterID); err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return ErrPolicyNotFound
		}
		s.logger.Error("Delete: repository error for salon=%d: %v", salonID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// checkStaffAccess проверяет, что пользователь числится в штате салона
func (s *Service) checkStaffAccess(ctx context.Context, salonID int64, userID int64) error {
	salon, err := s.staffClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, staffClient.ErrSalonNotFound) {
			s.logger.Warn("checkStaffAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get salon: %v", ErrInternal, err)
	}

	for _, staffID := range salon.StaffIDs {
		if staffID == userID {
			return nil
		}
	}

	s.logger.Warn("checkStaffAccess: user=%d is not staff of salon=%d", userID, salonID)
	return ErrAccessDenied
}
