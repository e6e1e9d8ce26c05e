package model

// Item представляет товар каталога.
type Item struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Price       float64 `db:"price" json:"price"`
	Description string  `db:"description" json:"description"`
	Quantity    int     `db:"quantity" json:"quantity"` // остаток на складе
}
