package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage. Kept as an
// interface so tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type userRepository struct {
	storage *Storage
}

type otpRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type couponRepository struct {
	storage *Storage
}

type pincodeRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) OTPChallenges() repository.OTPRepository {
	return &otpRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Coupons() repository.CouponRepository {
	return &couponRepository{storage: s}
}

func (s *Storage) Pincodes() repository.PincodeRepository {
	return &pincodeRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            phone TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            deactivated BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS otp_challenges (
            phone TEXT PRIMARY KEY,
            code_hash TEXT NOT NULL,
            attempts INT NOT NULL DEFAULT 0,
            last_sent_at TIMESTAMPTZ NOT NULL,
            expires_at TIMESTAMPTZ NOT NULL,
            verified_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            user_id BIGINT NOT NULL REFERENCES users(id),
            address_id BIGINT NOT NULL,
            label TEXT NOT NULL DEFAULT '',
            line1 TEXT NOT NULL,
            line2 TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL DEFAULT '',
            pincode TEXT NOT NULL,
            latitude DOUBLE PRECISION,
            longitude DOUBLE PRECISION,
            is_default BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_id, address_id)
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            category_id BIGINT NOT NULL REFERENCES categories(id),
            name TEXT NOT NULL,
            unit TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            stock INT NOT NULL DEFAULT 0,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS coupons (
            code TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            value DOUBLE PRECISION NOT NULL,
            min_order_value DOUBLE PRECISION NOT NULL DEFAULT 0,
            expires_at TIMESTAMPTZ NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS pincodes (
            code TEXT PRIMARY KEY,
            area TEXT NOT NULL DEFAULT '',
            delivery_days INT NOT NULL DEFAULT 2
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            number BIGINT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            address JSONB NOT NULL,
            items JSONB NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL,
            delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
            discount DOUBLE PRECISION NOT NULL DEFAULT 0,
            coupon_code TEXT NOT NULL DEFAULT '',
            grand_total DOUBLE PRECISION NOT NULL,
            payment_method TEXT NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            gateway_order_id TEXT NOT NULL DEFAULT '',
            gateway_payment_id TEXT NOT NULL DEFAULT '',
            failure_reason TEXT NOT NULL DEFAULT '',
            placed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, placed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_payment_pending ON orders(placed_at) WHERE status='payment_pending'`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id, name)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, phone, name, email string) (*model.User, error) {
	const query = `INSERT INTO users (phone, name, email) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, phone, name, email).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Phone = phone
	u.Name = name
	u.Email = email
	return &u, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	const query = `SELECT id, phone, name, email, deactivated, created_at FROM users WHERE phone=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, phone))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, phone, name, email, deactivated, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Email, &u.Deactivated, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SetDeactivated(ctx context.Context, id int64, deactivated bool) error {
	const query = `UPDATE users SET deactivated=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, deactivated, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OTPRepository implementation ---

func (r *otpRepository) Upsert(ctx context.Context, challenge *model.OTPChallenge) error {
	const query = `INSERT INTO otp_challenges (phone, code_hash, attempts, last_sent_at, expires_at, verified_at)
                   VALUES ($1, $2, 0, $3, $4, NULL)
                   ON CONFLICT (phone) DO UPDATE
                   SET code_hash=EXCLUDED.code_hash,
                       attempts=0,
                       last_sent_at=EXCLUDED.last_sent_at,
                       expires_at=EXCLUDED.expires_at,
                       verified_at=NULL`
	_, err := r.storage.pool.Exec(ctx, query, challenge.Phone, challenge.CodeHash, challenge.LastSentAt, challenge.ExpiresAt)
	return err
}

func (r *otpRepository) Get(ctx context.Context, phone string) (*model.OTPChallenge, error) {
	const query = `SELECT phone, code_hash, attempts, last_sent_at, expires_at, verified_at
                   FROM otp_challenges WHERE phone=$1`
	var c model.OTPChallenge
	err := r.storage.pool.QueryRow(ctx, query, phone).Scan(&c.Phone, &c.CodeHash, &c.Attempts, &c.LastSentAt, &c.ExpiresAt, &c.VerifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, phone string) error {
	const query = `UPDATE otp_challenges SET attempts=attempts+1 WHERE phone=$1`
	tag, err := r.storage.pool.Exec(ctx, query, phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *otpRepository) MarkVerified(ctx context.Context, phone string, at time.Time) error {
	const query = `UPDATE otp_challenges SET verified_at=$1 WHERE phone=$2`
	tag, err := r.storage.pool.Exec(ctx, query, at, phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *otpRepository) Delete(ctx context.Context, phone string) error {
	const query = `DELETE FROM otp_challenges WHERE phone=$1`
	_, err := r.storage.pool.Exec(ctx, query, phone)
	return err
}

// --- OrderRepository implementation ---

const orderColumns = `id, number, user_id, address, items, subtotal, delivery_fee, discount, coupon_code,
                      grand_total, payment_method, status, payment_status, gateway_order_id,
                      gateway_payment_id, failure_reason, placed_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return nil, fmt.Errorf("marshal address snapshot: %w", err)
	}
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}

	const query = `INSERT INTO orders
                   (number, user_id, address, items, subtotal, delivery_fee, discount, coupon_code,
                    grand_total, payment_method, status, payment_status, gateway_order_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
                   RETURNING id, placed_at, updated_at`
	created := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.Number, order.UserID, addressJSON, itemsJSON,
		order.Subtotal, order.DeliveryFee, order.Discount, order.CouponCode,
		order.GrandTotal, order.PaymentMethod, order.Status, order.PaymentStatus, order.GatewayOrderID,
	).Scan(&created.ID, &created.PlacedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o           model.Order
		addressJSON []byte
		itemsJSON   []byte
	)
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &addressJSON, &itemsJSON,
		&o.Subtotal, &o.DeliveryFee, &o.Discount, &o.CouponCode,
		&o.GrandTotal, &o.PaymentMethod, &o.Status, &o.PaymentStatus,
		&o.GatewayOrderID, &o.GatewayPayment, &o.FailureReason, &o.PlacedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addressJSON, &o.Address); err != nil {
		return nil, fmt.Errorf("unmarshal address snapshot: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE number=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY placed_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, number int64, gatewayPaymentID string) (bool, error) {
	const query = `UPDATE orders
                   SET payment_status='paid', status='placed', gateway_payment_id=$2, updated_at=NOW()
                   WHERE number=$1 AND payment_status='pending' AND status='payment_pending'`
	tag, err := r.storage.pool.Exec(ctx, query, number, gatewayPaymentID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	return false, r.exists(ctx, number)
}

func (r *orderRepository) MarkPaymentFailed(ctx context.Context, number int64, reason string) (bool, error) {
	const query = `UPDATE orders
                   SET payment_status='failed', status='payment_failed', failure_reason=$2, updated_at=NOW()
                   WHERE number=$1 AND payment_status='pending' AND status='payment_pending'`
	tag, err := r.storage.pool.Exec(ctx, query, number, reason)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	return false, r.exists(ctx, number)
}

func (r *orderRepository) exists(ctx context.Context, number int64) error {
	const query = `SELECT 1 FROM orders WHERE number=$1`
	var one int
	if err := r.storage.pool.QueryRow(ctx, query, number).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *orderRepository) SelectStalePaymentPending(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE status='payment_pending' AND payment_method='online' AND placed_at < $1
              ORDER BY placed_at
              LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AddressRepository implementation ---

const addressColumns = `user_id, address_id, label, line1, line2, city, pincode, latitude, longitude, is_default, created_at`

func scanAddress(row pgx.Row) (*model.Address, error) {
	var a model.Address
	err := row.Scan(&a.UserID, &a.AddressID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.Pincode,
		&a.Latitude, &a.Longitude, &a.IsDefault, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY address_id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *address)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) Get(ctx context.Context, userID, addressID int64) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 AND address_id=$2`
	address, err := scanAddress(r.storage.pool.QueryRow(ctx, query, userID, addressID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	created := *address
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const nextQuery = `SELECT COALESCE(MAX(address_id), 0) + 1, COUNT(*) FROM addresses WHERE user_id=$1`
		var count int
		if err := tx.QueryRow(ctx, nextQuery, address.UserID).Scan(&created.AddressID, &count); err != nil {
			return err
		}
		// First address in the book becomes the default.
		created.IsDefault = address.IsDefault || count == 0

		const insertQuery = `INSERT INTO addresses
                             (user_id, address_id, label, line1, line2, city, pincode, latitude, longitude, is_default)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING created_at`
		if created.IsDefault {
			if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`, address.UserID); err != nil {
				return err
			}
		}
		return tx.QueryRow(ctx, insertQuery,
			created.UserID, created.AddressID, created.Label, created.Line1, created.Line2,
			created.City, created.Pincode, created.Latitude, created.Longitude, created.IsDefault,
		).Scan(&created.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	const query = `UPDATE addresses
                   SET label=$3, line1=$4, line2=$5, city=$6, pincode=$7, latitude=$8, longitude=$9
                   WHERE user_id=$1 AND address_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query,
		address.UserID, address.AddressID, address.Label, address.Line1, address.Line2,
		address.City, address.Pincode, address.Latitude, address.Longitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, userID, addressID int64) error {
	const query = `DELETE FROM addresses WHERE user_id=$1 AND address_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, addressID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *addressRepository) SetDefault(ctx context.Context, userID, addressID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`, userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE addresses SET is_default=TRUE WHERE user_id=$1 AND address_id=$2`, userID, addressID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

// --- CatalogRepository implementation ---

const productColumns = `id, category_id, name, unit, price, stock, active, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Unit, &p.Price, &p.Stock, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepository) Categories(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, slug FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()
	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id=$1 AND active ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	return r.collectProducts(rows)
}

func (r *catalogRepository) Product(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *catalogRepository) ProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return r.collectProducts(rows)
}

func (r *catalogRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active AND name ILIKE $1 || '%' ORDER BY name LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, prefix, limit)
	if err != nil {
		return nil, err
	}
	return r.collectProducts(rows)
}

// --- CouponRepository implementation ---

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	const query = `SELECT code, kind, value, min_order_value, expires_at, active FROM coupons WHERE code=$1`
	var c model.Coupon
	err := r.storage.pool.QueryRow(ctx, query, code).Scan(&c.Code, &c.Kind, &c.Value, &c.MinOrderValue, &c.ExpiresAt, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- PincodeRepository implementation ---

func (r *pincodeRepository) Get(ctx context.Context, code string) (*model.Pincode, error) {
	const query = `SELECT code, area, delivery_days FROM pincodes WHERE code=$1`
	var p model.Pincode
	err := r.storage.pool.QueryRow(ctx, query, code).Scan(&p.Code, &p.Area, &p.DeliveryDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
