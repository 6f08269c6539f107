package database

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser stores a new admin account with a bcrypt-hashed password.
func CreateUser(db *sql.DB, user *models.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), 14)
	if err != nil {
		return err
	}
	query := `INSERT INTO users (email, password, first_name, last_name)
			  VALUES ($1, $2, $3, $4) RETURNING id`
	return db.QueryRow(query, user.Email, string(hashed), user.FirstName, user.LastName).Scan(&user.ID)
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}
