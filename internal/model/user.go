package model

// User представляет зарегистрированного пользователя магазина.
// В поле Password хранится только bcrypt-хеш, открытый пароль никогда не сохраняется.
type User struct {
	ID        int    `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"` // уникален на уровне БД
	Password  string `db:"password" json:"-"`
	IsAdmin   bool   `db:"is_admin" json:"isAdmin"`
}
