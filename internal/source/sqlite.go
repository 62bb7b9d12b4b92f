package source

import (
	"context"
	"database/sql"
	"fmt"

	"wraps/internal/common"
	"wraps/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteSource reads merchant transaction sets from a SQLite database with
// merchants, transactions, products and payment_methods tables. The source
// is read-only; it never writes or migrates.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens the database at dbPath.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: database path is required", common.ErrMissingConfig)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// AvailableMerchants lists known merchants.
func (s *SQLiteSource) AvailableMerchants(ctx context.Context) ([]model.MerchantInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM merchants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var merchants []model.MerchantInfo
	for rows.Next() {
		var info model.MerchantInfo
		if err := rows.Scan(&info.ID, &info.Name); err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate merchants: %w", err)
	}
	return merchants, nil
}

// ListMerchantData loads every merchant's transaction set.
func (s *SQLiteSource) ListMerchantData(ctx context.Context) ([]model.MerchantData, error) {
	merchants, err := s.AvailableMerchants(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.MerchantData
	for _, info := range merchants {
		transactions, err := s.loadTransactions(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		if len(transactions) == 0 {
			continue
		}
		out = append(out, model.MerchantData{
			MerchantID:   info.ID,
			MerchantName: info.Name,
			Transactions: transactions,
		})
	}
	return out, nil
}

// LoadMerchantData loads one merchant's transaction set.
func (s *SQLiteSource) LoadMerchantData(ctx context.Context, merchantID int) (*model.MerchantData, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM merchants WHERE id = ?`, merchantID).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("merchant %d: %w", merchantID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant %d: %w", merchantID, err)
	}

	transactions, err := s.loadTransactions(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	return &model.MerchantData{
		MerchantID:   merchantID,
		MerchantName: name,
		Transactions: transactions,
	}, nil
}

func (s *SQLiteSource) loadTransactions(ctx context.Context, merchantID int) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, external_id, date_time, order_status,
		       price_subtotal, price_total, price_currency
		FROM transactions
		WHERE merchant_id = ?
		ORDER BY id`, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	var rowIDs []int64
	for rows.Next() {
		var rowID int64
		var tx model.Transaction
		var dateTime string
		if err := rows.Scan(&rowID, &tx.ExternalID, &dateTime, &tx.OrderStatus,
			&tx.Price.SubTotal, &tx.Price.Total, &tx.Price.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.DateTime = model.NewDateTime(dateTime)
		transactions = append(transactions, tx)
		rowIDs = append(rowIDs, rowID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	for i, rowID := range rowIDs {
		if transactions[i].Products, err = s.loadProducts(ctx, rowID); err != nil {
			return nil, err
		}
		if transactions[i].PaymentMethods, err = s.loadPayments(ctx, rowID); err != nil {
			return nil, err
		}
	}

	return transactions, nil
}

func (s *SQLiteSource) loadProducts(ctx context.Context, transactionRowID int64) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT external_id, name, quantity,
		       price_subtotal, price_total, price_currency, price_unit
		FROM products
		WHERE transaction_id = ?
		ORDER BY id`, transactionRowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ExternalID, &p.Name, &p.Quantity,
			&p.Price.SubTotal, &p.Price.Total, &p.Price.Currency, &p.Price.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func (s *SQLiteSource) loadPayments(ctx context.Context, transactionRowID int64) ([]model.PaymentMethod, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT external_id, type, brand, last_four, transaction_amount
		FROM payment_methods
		WHERE transaction_id = ?
		ORDER BY id`, transactionRowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var payments []model.PaymentMethod
	for rows.Next() {
		var pm model.PaymentMethod
		if err := rows.Scan(&pm.ExternalID, &pm.Type, &pm.Brand, &pm.LastFour, &pm.TransactionAmount); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		payments = append(payments, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment methods: %w", err)
	}
	return payments, nil
}
