package repository

import (
	"fmt"

	"grocery/internal/model"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// BookingRepository обеспечивает доступ к данным бронирований в базе данных.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository создает новый репозиторий для бронирований.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookItems атомарно оформляет заказ: вставляет по одной строке бронирования
// на каждую позицию и уменьшает остаток каждого товара на заказанное количество.
// Либо применяются все n вставок и все n списаний, либо ни одно изменение
// не становится видимым - откат гарантируется транзакцией БД.
//
// Списания выполняются независимо друг от друга; ожидаем завершения всех,
// первая же ошибка прерывает операцию. Проверки остатка нет: остаток может
// уйти в минус, это текущее поведение системы.
func (r *BookingRepository) BookItems(userID int, lines []model.BookingLine) error {
	bookings := make([]model.Booking, len(lines))
	for i, line := range lines {
		bookings[i] = model.Booking{UserID: userID, ItemID: line.ItemID, Quantity: line.Quantity}
	}

	return withTx(r.db, func(tx *sqlx.Tx) error {
		// Одна групповая вставка всех строк заказа
		_, err := tx.NamedExec(
			`INSERT INTO bookings (user_id, item_id, quantity) VALUES (:user_id, :item_id, :quantity)`,
			bookings,
		)
		if err != nil {
			return fmt.Errorf("не удалось сохранить строки заказа: %w", err)
		}

		// Списания остатков по каждой позиции; драйвер сериализует запросы
		// на соединении транзакции
		var g errgroup.Group
		for _, line := range lines {
			line := line
			g.Go(func() error {
				result, err := tx.Exec(
					"UPDATE items SET quantity = quantity - $1 WHERE id = $2",
					line.Quantity, line.ItemID,
				)
				if err != nil {
					return fmt.Errorf("не удалось списать остаток товара %d: %w", line.ItemID, err)
				}
				affected, err := result.RowsAffected()
				if err != nil {
					return err
				}
				if affected == 0 {
					return fmt.Errorf("товар не найден: %d", line.ItemID)
				}
				return nil
			})
		}
		return g.Wait()
	})
}

// FindByUser возвращает все бронирования пользователя.
func (r *BookingRepository) FindByUser(userID int) ([]model.Booking, error) {
	bookings := []model.Booking{}
	err := r.db.Select(&bookings, "SELECT * FROM bookings WHERE user_id=$1", userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении бронирований: %w", err)
	}
	return bookings, nil
}
