package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	calendarRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/calendar"
	staffClient "github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
	"github.com/katiabooking/KB-BookingService/internal/service/reservations/models"
)

// Service сервис для чтения записей календаря
type Service struct {
	reservationRepo ReservationRepository
	staffClient     StaffServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		staffClient:     staffClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент видит только свою запись,
// либо пользователь должен быть сотрудником салона
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%d", id, userID)

	rec, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrRecordNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, rec, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%s", userID, id)
		return nil, err
	}

	return models.FromDomainRecord(rec), nil
}

// GetUserReservations получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	recs, err := s.reservationRepo.ListByClient(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(recs), req.UserID)
	return models.FromDomainRecordList(recs), nil
}

// GetSalonReservations получает записи салона с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусу и включению отмененных
// Доступно только сотрудникам салона
func (s *Service) GetSalonReservations(ctx context.Context, req *models.GetSalonReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSalonReservations: fetching reservations for salon=%d, user=%d", req.SalonID, req.UserID)

	if err := s.checkStaffAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonReservations: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	recs, err := s.reservationRepo.ListBySalon(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonReservations: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonReservations: fetched %d reservations for salon=%d", len(recs), req.SalonID)
	return models.FromDomainRecordList(recs), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Клиент видит свою запись, сотрудник салона - любую запись салона
func (s *Service) checkUserAccess(ctx context.Context, rec *domain.ReservationRecord, userID int64) error {
	if rec.ClientID == userID {
		return nil
	}

	if err := s.checkStaffAccess(ctx, rec.SalonID, userID); err != nil {
		return ErrAccessDenied
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
