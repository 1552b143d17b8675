package store

const (
	createUser = `INSERT INTO users (id, username, email, password_hash, role, name, department, is_active)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id, username, email, password_hash, role, name, department, is_active, last_login, created_at;`

	findUserByUsername = `SELECT id, username, email, password_hash, role, name, department, is_active, last_login, created_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT id, username, email, password_hash, role, name, department, is_active, last_login, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, username, email, password_hash, role, name, department, is_active, last_login, created_at
    FROM users
    WHERE id = $1;`

	updatePassword = `UPDATE users
    SET password_hash = $2
    WHERE id = $1;`

	touchLastLogin = `UPDATE users
    SET last_login = now()
    WHERE id = $1;`
)
