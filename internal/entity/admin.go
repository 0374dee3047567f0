package entity

// Admin represents the admins table.
type Admin struct {
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

// Customer represents the customer table. Rows are upserted from checkout
// intake; the global counters report counts them.
type Customer struct {
	ID    int    `db:"id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
}
