package model

// Booking представляет одну строку заказа: пользователь забронировал
// указанное количество товара. Записи создаются только внутри транзакции
// бронирования и далее не изменяются.
type Booking struct {
	ID       int `db:"id" json:"id"`
	UserID   int `db:"user_id" json:"userId"`
	ItemID   int `db:"item_id" json:"itemId"`
	Quantity int `db:"quantity" json:"quantity"`
}

// BookingLine - пара (товар, количество) из запроса на бронирование.
type BookingLine struct {
	ItemID   int `json:"id"`
	Quantity int `json:"quantity"`
}
