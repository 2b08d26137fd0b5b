package domain

type Supplier struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Country       string `db:"country" json:"country"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Email         string `db:"email" json:"email"`
	Phone         string `db:"phone" json:"phone"`
	Notes         string `db:"notes" json:"notes"`
	CreatedAt     string `db:"created_at" json:"created_at"`
}
