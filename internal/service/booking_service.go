package service

import (
	"context"
	"errors"

	"grocery/internal/cache"
	"grocery/internal/events"
	"grocery/internal/model"
	"grocery/internal/repository"
	"grocery/internal/requestid"

	"go.uber.org/zap"
)

// ErrNoItems возвращается, если список позиций заказа пуст.
var ErrNoItems = errors.New("items are required")

// BookingService содержит бизнес-логику, связанную с бронированиями.
type BookingService struct {
	bookingRepo *repository.BookingRepository
	cache       *cache.ItemsCache // nil - кэширование отключено
	publisher   *events.Publisher // nil - публикация событий отключена
	log         *zap.Logger
}

// NewBookingService создает новый сервис бронирований.
func NewBookingService(bookingRepo *repository.BookingRepository, itemsCache *cache.ItemsCache,
	publisher *events.Publisher, log *zap.Logger) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, cache: itemsCache, publisher: publisher, log: log}
}

// BookItems оформляет заказ для аутентифицированного пользователя.
// Идентификатор пользователя берется из claims токена, а не из тела запроса.
// Все строки заказа и списания остатков применяются одной транзакцией.
func (s *BookingService) BookItems(ctx context.Context, userID int, lines []model.BookingLine) error {
	if len(lines) == 0 {
		return ErrNoItems
	}
	if err := s.bookingRepo.BookItems(userID, lines); err != nil {
		return err
	}
	// Остатки изменились - кэш каталога больше не актуален
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("не удалось сбросить кэш товаров", zap.Error(err))
	}
	// Событие публикуется после коммита; ошибка публикации заказ не отменяет
	if s.publisher != nil {
		if err := s.publisher.PublishBookingCreated(ctx, requestid.FromContext(ctx), userID, lines); err != nil {
			s.log.Warn("не удалось опубликовать событие заказа", zap.Error(err))
		}
	}
	return nil
}

// GetBookings возвращает все бронирования пользователя.
func (s *BookingService) GetBookings(userID int) ([]model.Booking, error) {
	return s.bookingRepo.FindByUser(userID)
}
