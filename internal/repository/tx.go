package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// withTx выполняет fn внутри транзакции: откат при любой ошибке,
// фиксация только если fn завершилась успешно. Частичное состояние
// снаружи транзакции не видно никогда.
func withTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("не удалось открыть транзакцию: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			// Откат тоже не удался - сообщаем обе ошибки без дальнейшего восстановления
			return fmt.Errorf("ошибка отката (%v) после ошибки транзакции: %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return nil
}
