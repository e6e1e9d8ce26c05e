package repository

import (
	"fmt"

	"grocery/internal/model"

	"github.com/jmoiron/sqlx"
)

// ItemRepository обеспечивает доступ к данным товаров в базе данных.
type ItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository создает новый репозиторий для товаров.
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// FindAll возвращает все товары каталога.
func (r *ItemRepository) FindAll() ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.Select(&items, "SELECT * FROM items")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка товаров: %w", err)
	}
	return items, nil
}

// GetByID получает товар по его идентификатору.
func (r *ItemRepository) GetByID(id int) (*model.Item, error) {
	var item model.Item
	err := r.db.Get(&item, "SELECT * FROM items WHERE id=$1", id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create добавляет новый товар. Возвращает ID созданного товара.
func (r *ItemRepository) Create(item *model.Item) (int, error) {
	query := `INSERT INTO items (name, price, description, quantity)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := r.db.QueryRow(query, item.Name, item.Price, item.Description, item.Quantity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать товар: %w", err)
	}
	return id, nil
}

// Update обновляет все поля товара.
func (r *ItemRepository) Update(item *model.Item) error {
	query := `UPDATE items SET name=$1, price=$2, description=$3, quantity=$4 WHERE id=$5`
	_, err := r.db.Exec(query, item.Name, item.Price, item.Description, item.Quantity, item.ID)
	if err != nil {
		return fmt.Errorf("не удалось обновить товар: %w", err)
	}
	return nil
}

// Delete удаляет товар по идентификатору.
func (r *ItemRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM items WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить товар: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("товар не найден: %d", id)
	}
	return nil
}

// UpdateQuantity устанавливает новое количество товара (абсолютное значение).
func (r *ItemRepository) UpdateQuantity(id, quantity int) error {
	_, err := r.db.Exec("UPDATE items SET quantity=$1 WHERE id=$2", quantity, id)
	if err != nil {
		return fmt.Errorf("не удалось обновить количество товара: %w", err)
	}
	return nil
}
