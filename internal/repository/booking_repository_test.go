package repository

import (
	"testing"

	"grocery/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, repo *ItemRepository, name string, quantity int) int {
	t.Helper()
	id, err := repo.Create(&model.Item{Name: name, Price: 9.99, Description: name, Quantity: quantity})
	require.NoError(t, err)
	return id
}

func TestBookItems(t *testing.T) {
	db := setupTestDB(t)
	itemRepo := NewItemRepository(db)
	repo := NewBookingRepository(db)

	first := seedItem(t, itemRepo, "Молоко", 5)
	second := seedItem(t, itemRepo, "Хлеб", 3)

	err := repo.BookItems(7, []model.BookingLine{
		{ItemID: first, Quantity: 2},
		{ItemID: second, Quantity: 1},
	})
	require.NoError(t, err)

	// Ровно по одной строке заказа на каждую позицию
	bookings, err := repo.FindByUser(7)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, first, bookings[0].ItemID)
	assert.Equal(t, 2, bookings[0].Quantity)
	assert.Equal(t, second, bookings[1].ItemID)
	assert.Equal(t, 1, bookings[1].Quantity)

	// Остатки уменьшились ровно на заказанное количество
	firstItem, err := itemRepo.GetByID(first)
	require.NoError(t, err)
	assert.Equal(t, 3, firstItem.Quantity)
	secondItem, err := itemRepo.GetByID(second)
	require.NoError(t, err)
	assert.Equal(t, 2, secondItem.Quantity)
}

func TestBookItemsRollsBackOnFailedDecrement(t *testing.T) {
	db := setupTestDB(t)
	itemRepo := NewItemRepository(db)
	repo := NewBookingRepository(db)

	id := seedItem(t, itemRepo, "Сыр", 5)

	// Вторая позиция указывает на несуществующий товар - списание не затронет ни одной строки
	err := repo.BookItems(7, []model.BookingLine{
		{ItemID: id, Quantity: 2},
		{ItemID: 9999, Quantity: 1},
	})
	require.Error(t, err)

	// Ни строки заказа, ни изменения остатка не видны после отката
	bookings, err := repo.FindByUser(7)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	item, err := itemRepo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestBookItemsAllowsNegativeQuantity(t *testing.T) {
	db := setupTestDB(t)
	itemRepo := NewItemRepository(db)
	repo := NewBookingRepository(db)

	// Проверки остатка нет: заказ больше наличия проходит, остаток уходит в минус
	id := seedItem(t, itemRepo, "Яблоки", 1)
	err := repo.BookItems(7, []model.BookingLine{{ItemID: id, Quantity: 5}})
	require.NoError(t, err)

	item, err := itemRepo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, -4, item.Quantity)
}

func TestBookItemsSingleLine(t *testing.T) {
	db := setupTestDB(t)
	itemRepo := NewItemRepository(db)
	repo := NewBookingRepository(db)

	id := seedItem(t, itemRepo, "Кофе", 10)
	err := repo.BookItems(3, []model.BookingLine{{ItemID: id, Quantity: 4}})
	require.NoError(t, err)

	bookings, err := repo.FindByUser(3)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 3, bookings[0].UserID)

	item, err := itemRepo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Quantity)
}
