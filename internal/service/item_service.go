package service

import (
	"context"

	"grocery/internal/cache"
	"grocery/internal/model"
	"grocery/internal/repository"

	"go.uber.org/zap"
)

// ItemService содержит бизнес-логику, связанную с каталогом товаров.
type ItemService struct {
	itemRepo *repository.ItemRepository
	cache    *cache.ItemsCache // nil - кэширование отключено
	log      *zap.Logger
}

// NewItemService создает новый сервис каталога.
func NewItemService(itemRepo *repository.ItemRepository, itemsCache *cache.ItemsCache, log *zap.Logger) *ItemService {
	return &ItemService{itemRepo: itemRepo, cache: itemsCache, log: log}
}

// ListItems возвращает все товары. Сначала проверяется кэш; промах или ошибка
// кэша ведут в базу, результат кладется обратно в кэш (best-effort).
func (s *ItemService) ListItems(ctx context.Context) ([]model.Item, error) {
	if items, hit, err := s.cache.Get(ctx); err == nil && hit {
		return items, nil
	} else if err != nil {
		s.log.Warn("ошибка чтения кэша товаров", zap.Error(err))
	}
	items, err := s.itemRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, items); err != nil {
		s.log.Warn("не удалось записать кэш товаров", zap.Error(err))
	}
	return items, nil
}

// CreateItem добавляет товар и сбрасывает кэш.
func (s *ItemService) CreateItem(ctx context.Context, item *model.Item) (int, error) {
	id, err := s.itemRepo.Create(item)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

// UpdateItem обновляет все поля товара и сбрасывает кэш.
func (s *ItemService) UpdateItem(ctx context.Context, item *model.Item) error {
	if err := s.itemRepo.Update(item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteItem удаляет товар и сбрасывает кэш.
func (s *ItemService) DeleteItem(ctx context.Context, id int) error {
	if err := s.itemRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateItemQuantity устанавливает новое количество товара и сбрасывает кэш.
func (s *ItemService) UpdateItemQuantity(ctx context.Context, id, quantity int) error {
	if err := s.itemRepo.UpdateQuantity(id, quantity); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ItemService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("не удалось сбросить кэш товаров", zap.Error(err))
	}
}
