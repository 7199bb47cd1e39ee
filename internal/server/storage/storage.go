// ABOUTME: SQLite persistence for users and simulations
// ABOUTME: Wraps database/sql with inline migrations, uuid keys assigned on insert

package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fespschulte/amora-simulator/internal/finance"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// ErrNotFound indicates the referenced row does not exist.
var ErrNotFound = errors.New("not found")

// User is a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    sql.NullTime
}

// Simulation is a persisted property-purchase scenario. Derived fields are
// computed by the caller before insert/update; storage never recalculates.
type Simulation struct {
	ID                    string
	UserID                string
	PropertyValue         float64
	DownPaymentPercentage float64
	ContractYears         int
	Name                  string
	Notes                 string
	finance.Breakdown
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storage wraps a sql.DB connection.
type Storage struct {
	conn *sql.DB
}

// New opens a database connection and runs migrations.
func New(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	s := &Storage{conn: conn}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			last_login DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS simulations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			property_value REAL NOT NULL,
			down_payment_percentage REAL NOT NULL,
			contract_years INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			down_payment_value REAL NOT NULL,
			financing_amount REAL NOT NULL,
			additional_costs REAL NOT NULL,
			monthly_savings REAL NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_simulations_user_id ON simulations(user_id)`,
	}

	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *Storage) Close() error {
	return s.conn.Close()
}

// CreateUser inserts a new user, assigning its id and creation time.
func (s *Storage) CreateUser(u *User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	_, err := s.conn.Exec(
		"INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	)
	return err
}

// UserByEmail retrieves a user by email.
func (s *Storage) UserByEmail(email string) (*User, error) {
	return s.userBy("email = ?", email)
}

// UserByUsername retrieves a user by username.
func (s *Storage) UserByUsername(username string) (*User, error) {
	return s.userBy("username = ?", username)
}

// UserByID retrieves a user by id.
func (s *Storage) UserByID(id string) (*User, error) {
	return s.userBy("id = ?", id)
}

func (s *Storage) userBy(where string, arg interface{}) (*User, error) {
	row := s.conn.QueryRow(
		"SELECT id, username, email, password_hash, created_at, last_login FROM users WHERE "+where,
		arg,
	)

	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser replaces the mutable user fields.
func (s *Storage) UpdateUser(u *User) error {
	res, err := s.conn.Exec(
		"UPDATE users SET username = ?, email = ?, password_hash = ? WHERE id = ?",
		u.Username, u.Email, u.PasswordHash, u.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteUser removes a user and all of their simulations.
func (s *Storage) DeleteUser(id string) error {
	if _, err := s.conn.Exec("DELETE FROM simulations WHERE user_id = ?", id); err != nil {
		return err
	}
	res, err := s.conn.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// RecordLogin stamps the user's last successful login.
func (s *Storage) RecordLogin(id string, at time.Time) error {
	res, err := s.conn.Exec("UPDATE users SET last_login = ? WHERE id = ?", at, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// CreateSimulation inserts a new simulation, assigning id and timestamps.
func (s *Storage) CreateSimulation(sim *Simulation) error {
	sim.ID = uuid.NewString()
	now := time.Now().UTC()
	sim.CreatedAt = now
	sim.UpdatedAt = now

	_, err := s.conn.Exec(
		`INSERT INTO simulations (
			id, user_id, property_value, down_payment_percentage, contract_years,
			name, notes, down_payment_value, financing_amount, additional_costs,
			monthly_savings, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sim.ID, sim.UserID, sim.PropertyValue, sim.DownPaymentPercentage, sim.ContractYears,
		sim.Name, sim.Notes, sim.DownPaymentValue, sim.FinancingAmount, sim.AdditionalCosts,
		sim.MonthlySavings, sim.CreatedAt, sim.UpdatedAt,
	)
	return err
}

const simulationColumns = `id, user_id, property_value, down_payment_percentage, contract_years,
	name, notes, down_payment_value, financing_amount, additional_costs,
	monthly_savings, created_at, updated_at`

// SimulationsByUser retrieves a user's simulations, newest first.
func (s *Storage) SimulationsByUser(userID string) ([]Simulation, error) {
	rows, err := s.conn.Query(
		"SELECT "+simulationColumns+" FROM simulations WHERE user_id = ? ORDER BY created_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sims := []Simulation{}
	for rows.Next() {
		var sim Simulation
		if err := scanSimulation(rows.Scan, &sim); err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, rows.Err()
}

// SimulationByID retrieves a single simulation.
func (s *Storage) SimulationByID(id string) (*Simulation, error) {
	row := s.conn.QueryRow("SELECT "+simulationColumns+" FROM simulations WHERE id = ?", id)

	var sim Simulation
	err := scanSimulation(row.Scan, &sim)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sim, nil
}

func scanSimulation(scan func(...interface{}) error, sim *Simulation) error {
	return scan(
		&sim.ID, &sim.UserID, &sim.PropertyValue, &sim.DownPaymentPercentage, &sim.ContractYears,
		&sim.Name, &sim.Notes, &sim.DownPaymentValue, &sim.FinancingAmount, &sim.AdditionalCosts,
		&sim.MonthlySavings, &sim.CreatedAt, &sim.UpdatedAt,
	)
}

// UpdateSimulation replaces the mutable and derived fields, refreshing
// updated_at.
func (s *Storage) UpdateSimulation(sim *Simulation) error {
	sim.UpdatedAt = time.Now().UTC()
	res, err := s.conn.Exec(
		`UPDATE simulations SET
			property_value = ?, down_payment_percentage = ?, contract_years = ?,
			name = ?, notes = ?, down_payment_value = ?, financing_amount = ?,
			additional_costs = ?, monthly_savings = ?, updated_at = ?
		WHERE id = ?`,
		sim.PropertyValue, sim.DownPaymentPercentage, sim.ContractYears,
		sim.Name, sim.Notes, sim.DownPaymentValue, sim.FinancingAmount,
		sim.AdditionalCosts, sim.MonthlySavings, sim.UpdatedAt, sim.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteSimulation removes a simulation by id.
func (s *Storage) DeleteSimulation(id string) error {
	res, err := s.conn.Exec("DELETE FROM simulations WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
