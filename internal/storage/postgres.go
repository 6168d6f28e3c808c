package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS resource_names (
	guid VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL
);
CREATE TABLE IF NOT EXISTS shop_names (
	shop_id VARCHAR(64) PRIMARY KEY,
	name    VARCHAR(255) NOT NULL
);`

// PostgresStorage implements NameStore using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage and makes sure the
// name tables exist.
func NewPostgresStorage(ctx context.Context, cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}

	err = p.EnsureSchema(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return p, nil
}

// EnsureSchema creates the name tables if they are missing.
func (p *PostgresStorage) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create name tables: %w", err)
	}
	return nil
}

// ResourceNames returns every stored resource name.
func (p *PostgresStorage) ResourceNames(ctx context.Context) (map[string]string, error) {
	names, err := p.queryNames(ctx, "SELECT guid, name FROM resource_names")
	if err != nil {
		return nil, fmt.Errorf("query resource names: %w", err)
	}
	return names, nil
}

// ShopNames returns every stored shop name.
func (p *PostgresStorage) ShopNames(ctx context.Context) (map[string]string, error) {
	names, err := p.queryNames(ctx, "SELECT shop_id, name FROM shop_names")
	if err != nil {
		return nil, fmt.Errorf("query shop names: %w", err)
	}
	return names, nil
}

func (p *PostgresStorage) queryNames(ctx context.Context, query string) (map[string]string, error) {
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// SaveResourceName upserts the name of a resource.
func (p *PostgresStorage) SaveResourceName(ctx context.Context, guid, name string) error {
	if err := validate(guid, name); err != nil {
		return err
	}

	query := `
		INSERT INTO resource_names (guid, name) VALUES ($1, $2)
		ON CONFLICT (guid) DO UPDATE SET name = EXCLUDED.name
	`
	_, err := p.db.ExecContext(ctx, query, guid, name)
	if err != nil {
		return fmt.Errorf("upsert resource name: %w", err)
	}

	p.logger.Debug("resource-name-saved", zap.String("guid", guid))
	return nil
}

// SaveShopName upserts the name of a shop.
func (p *PostgresStorage) SaveShopName(ctx context.Context, shopID, name string) error {
	if err := validate(shopID, name); err != nil {
		return err
	}

	query := `
		INSERT INTO shop_names (shop_id, name) VALUES ($1, $2)
		ON CONFLICT (shop_id) DO UPDATE SET name = EXCLUDED.name
	`
	_, err := p.db.ExecContext(ctx, query, shopID, name)
	if err != nil {
		return fmt.Errorf("upsert shop name: %w", err)
	}

	p.logger.Debug("shop-name-saved", zap.String("shop-id", shopID))
	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
