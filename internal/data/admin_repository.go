package data

import (
	"context"
	"fmt"
)

const adminColumns = `id, name, email, password, avatar, created_at`

// AdminRepository stores administrator accounts.
type AdminRepository struct {
	db Queryer
}

func NewAdminRepository(db Queryer) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) ByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = ?`
	if err := get(ctx, r.db, &a, "admin "+email, query, email); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) ByID(ctx context.Context, id int64) (*Admin, error) {
	var a Admin
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = ?`
	if err := get(ctx, r.db, &a, fmt.Sprintf("admin %d", id), query, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a with an already hashed password.
func (r *AdminRepository) Create(ctx context.Context, a *Admin) (int64, error) {
	query := `INSERT INTO admins (name, email, password, avatar) VALUES (:name, :email, :password, :avatar)`
	return insert(ctx, r.db, "admin", query, a)
}

func (r *AdminRepository) UpdateProfile(ctx context.Context, a *Admin) error {
	query := `UPDATE admins SET name = :name, email = :email, avatar = :avatar WHERE id = :id`
	return update(ctx, r.db, "admin", "admins", a.ID, 0, query, a)
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return exec(ctx, r.db, "admin", "admins", id, `UPDATE admins SET password = ? WHERE id = ?`, hash, id)
}
