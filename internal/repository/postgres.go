package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

var _ ProductStore = (*PostgresStore)(nil)
var _ OrderStore = postgresOrders{}
var _ ProfileStore = (*PostgresStore)(nil)

type sqldb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
	Close() error
}

// PostgresStore implements the catalog store interfaces against a
// PostgreSQL database reached through the pgx stdlib driver.
type PostgresStore struct {
	sqldb sqldb
}

// NewPostgresStore opens a connection for the given DSN and verifies
// the database is reachable.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	const op = "PostgresStore.New"

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &PostgresStore{db}
	if err := s.sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%s: database unavailable: %w", op, err)
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.sqldb.Close()
}

const productColumns = `id, name, description, price, image, category, featured, stock`

func scanProduct(scan func(dest ...any) error) (models.Product, error) {
	var row models.ProductRow
	var featured sql.NullBool
	var stock sql.NullInt64

	err := scan(
		&row.ID, &row.Name, &row.Description, &row.Price,
		&row.Image, &row.Category, &featured, &stock,
	)
	if err != nil {
		return models.Product{}, err
	}
	if featured.Valid {
		row.Featured = &featured.Bool
	}
	if stock.Valid {
		v := int(stock.Int64)
		row.Stock = &v
	}
	return models.MapProduct(row), nil
}

func (s *PostgresStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *PostgresStore) GetAll(ctx context.Context) ([]models.Product, error) {
	const op = "PostgresStore.GetAll"

	query := `SELECT ` + productColumns + ` FROM products;`
	products, err := s.queryProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *PostgresStore) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	const op = "PostgresStore.GetByCategory"

	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1;`
	products, err := s.queryProducts(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	const op = "PostgresStore.GetByID"

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`
	p, err := scanProduct(s.sqldb.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (s *PostgresStore) GetRelated(ctx context.Context, category, excludeID string, limit int) ([]models.Product, error) {
	const op = "PostgresStore.GetRelated"

	query := `SELECT ` + productColumns + ` FROM products
		WHERE category = $1 AND id <> $2 LIMIT $3;`
	products, err := s.queryProducts(ctx, query, category, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *PostgresStore) ListByName(ctx context.Context) ([]models.Product, error) {
	const op = "PostgresStore.ListByName"

	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC;`
	products, err := s.queryProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *PostgresStore) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	const op = "PostgresStore.Create"

	query := `
		INSERT INTO products (name, description, price, image, category, featured, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns + `;`
	created, err := scanProduct(s.sqldb.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Image, p.Category, p.Featured, p.Stock,
	).Scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, p models.Product) (*models.Product, error) {
	const op = "PostgresStore.Update"

	query := `
		UPDATE products SET
			name = $2, description = $3, price = $4, image = $5,
			category = $6, featured = $7, stock = $8
		WHERE id = $1
		RETURNING ` + productColumns + `;`
	updated, err := scanProduct(s.sqldb.QueryRowContext(ctx, query,
		id, p.Name, p.Description, p.Price, p.Image, p.Category, p.Featured, p.Stock,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const op = "PostgresStore.Delete"

	res, err := s.sqldb.ExecContext(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	const op = "PostgresStore.GetAllOrders"

	query := `
		SELECT id, user_id, total, status, created_at
		FROM orders ORDER BY created_at DESC;`
	rows, err := s.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *PostgresStore) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	const op = "PostgresStore.GetOrderByID"

	query := `SELECT id, user_id, total, status, created_at FROM orders WHERE id = $1;`
	var o models.Order
	err := s.sqldb.QueryRowContext(ctx, query, id).
		Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &o, nil
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	const op = "PostgresStore.UpdateOrderStatus"

	query := `
		UPDATE orders SET status = $2 WHERE id = $1
		RETURNING id, user_id, total, status, created_at;`
	var o models.Order
	err := s.sqldb.QueryRowContext(ctx, query, id, status).
		Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &o, nil
}

// RoleForToken resolves an access token to its profile role.
func (s *PostgresStore) RoleForToken(ctx context.Context, token string) (string, error) {
	const op = "PostgresStore.RoleForToken"

	query := `SELECT role FROM profiles WHERE api_token = $1;`
	var role string
	err := s.sqldb.QueryRowContext(ctx, query, token).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return role, nil
}

// Orders returns an OrderStore view of the postgres store.
func (s *PostgresStore) Orders() OrderStore {
	return postgresOrders{s}
}

type postgresOrders struct{ s *PostgresStore }

func (o postgresOrders) GetAll(ctx context.Context) ([]models.Order, error) {
	return o.s.GetAllOrders(ctx)
}

func (o postgresOrders) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return o.s.GetOrderByID(ctx, id)
}

func (o postgresOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	return o.s.UpdateOrderStatus(ctx, id, status)
}
