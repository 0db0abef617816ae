package contacts

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/thehouseofcoaching/awl-scanner/internal/models"
)

// PostgresRepository stores contacts in Postgres. Selected when DATABASE_URL
// is configured; the JSON file backend is the default.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects via the pgx stdlib driver and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the contacts table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists contacts (
    id bigserial primary key,
    name text not null,
    email text not null
)`
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to ensure contacts schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) All(ctx context.Context) ([]models.Contact, error) {
	const q = `select id, name, email from contacts order by id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var list []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) Add(ctx context.Context, name, email string) (*models.Contact, error) {
	const q = `insert into contacts (name, email) values ($1, $2) returning id`
	contact := models.Contact{Name: name, Email: email}
	if err := r.db.QueryRowContext(ctx, q, name, email).Scan(&contact.ID); err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}
	return &contact, nil
}

// Delete removes a contact. Deleting an unknown id is not an error, matching
// the file backend's filter semantics.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const q = `delete from contacts where id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
