package model

import "time"

// User студент, проходящий тесты
type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MiddleName   string    `json:"middle_name"`
	Faculty      string    `json:"faculty"`
	Course       int       `json:"course"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName ФИО в порядке "Фамилия Имя Отчество"
func (u User) FullName() string {
	return u.LastName + " " + u.FirstName + " " + u.MiddleName
}
