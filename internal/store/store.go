// Package store persists planner state in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/pipeline"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a row addressed by ID does not exist.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

// Store provides SQLite-backed planner state.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path and migrates it to
// the latest schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := migrateUp(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func fillID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadIncome returns the saved income profile, or the defaults when none
// has been saved.
func (s *Store) LoadIncome() (model.IncomeProfile, error) {
	var p model.IncomeProfile
	var freq string
	err := s.db.QueryRow(`SELECT frequency, gross_per_paycheck, tax_rate_pct, deductions, other_monthly
		FROM income_profile WHERE id = 1`).
		Scan(&freq, &p.GrossPerPaycheck, &p.TaxRatePct, &p.OtherDeductionsPerPaycheck, &p.OtherMonthlyIncome)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.CleanIncome(model.IncomeProfile{}), nil
	}
	if err != nil {
		return model.IncomeProfile{}, fmt.Errorf("loading income: %w", err)
	}
	p.Frequency = model.Frequency(freq)
	return pipeline.CleanIncome(p), nil
}

// SaveIncome replaces the income profile.
func (s *Store) SaveIncome(p model.IncomeProfile) error {
	p = pipeline.CleanIncome(p)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO income_profile
		(id, frequency, gross_per_paycheck, tax_rate_pct, deductions, other_monthly, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		string(p.Frequency), p.GrossPerPaycheck, p.TaxRatePct, p.OtherDeductionsPerPaycheck, p.OtherMonthlyIncome, now())
	if err != nil {
		return fmt.Errorf("saving income: %w", err)
	}
	return nil
}

// ListExpenses returns planned expenses in the order they were added.
func (s *Store) ListExpenses() ([]model.PlannedExpense, error) {
	rows, err := s.db.Query(`SELECT id, name, category, COALESCE(amount, 0)
		FROM expenses ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.PlannedExpense
	for rows.Next() {
		var e model.PlannedExpense
		var cat string
		if err := rows.Scan(&e.ID, &e.Name, &cat, &e.Amount); err != nil {
			return nil, err
		}
		e.Category = model.ParseCategory(cat)
		result = append(result, e)
	}
	return result, rows.Err()
}

// AddExpense stores a planned expense, assigning an ID when it has none.
func (s *Store) AddExpense(e model.PlannedExpense) (model.PlannedExpense, error) {
	e.ID = fillID(e.ID)
	e.Category = e.Category.Normalize()
	_, err := s.db.Exec(`INSERT INTO expenses (id, name, category, amount, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Name, string(e.Category), e.Amount, now())
	if err != nil {
		return model.PlannedExpense{}, fmt.Errorf("adding expense: %w", err)
	}
	return e, nil
}

// DeleteExpense removes a planned expense by ID.
func (s *Store) DeleteExpense(id string) error {
	res, err := s.db.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return expectOne(res)
}

// ListTransactions returns every transaction, newest first.
func (s *Store) ListTransactions() ([]model.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, date, category, description, COALESCE(amount, 0)
		FROM transactions ORDER BY date DESC, description, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var date, cat string
		if err := rows.Scan(&t.ID, &date, &cat, &t.Description, &t.Amount); err != nil {
			return nil, err
		}
		// Unreadable dates stay zero and are dropped by CleanSnapshot.
		t.Date, _ = time.Parse(dateLayout, date)
		t.Category = model.ParseCategory(cat)
		result = append(result, t)
	}
	return result, rows.Err()
}

// AddTransactions stores a batch of transactions in one database
// transaction. Either all rows are stored or none are.
func (s *Store) AddTransactions(txns []model.Transaction) ([]model.Transaction, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO transactions (id, date, category, description, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	stamp := now()
	stored := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		t.ID = fillID(t.ID)
		t.Category = t.Category.Normalize()
		if _, err := stmt.Exec(t.ID, t.Date.Format(dateLayout), string(t.Category), t.Description, t.Amount, stamp); err != nil {
			return nil, fmt.Errorf("adding transaction %s: %w", t.ID, err)
		}
		stored = append(stored, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transactions: %w", err)
	}
	return stored, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *Store) DeleteTransaction(id string) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return expectOne(res)
}

// ListDebts returns debts in the order they were added.
func (s *Store) ListDebts() ([]model.Debt, error) {
	rows, err := s.db.Query(`SELECT id, name, COALESCE(balance, 0), COALESCE(apr_pct, 0), COALESCE(min_payment, 0)
		FROM debts ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.Debt
	for rows.Next() {
		var d model.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.Balance, &d.APRPct, &d.MinPayment); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// AddDebt stores a debt, assigning an ID when it has none.
func (s *Store) AddDebt(d model.Debt) (model.Debt, error) {
	d.ID = fillID(d.ID)
	_, err := s.db.Exec(`INSERT INTO debts (id, name, balance, apr_pct, min_payment, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Balance, d.APRPct, d.MinPayment, now())
	if err != nil {
		return model.Debt{}, fmt.Errorf("adding debt: %w", err)
	}
	return d, nil
}

// UpdateDebt overwrites the stored fields of an existing debt.
func (s *Store) UpdateDebt(d model.Debt) error {
	res, err := s.db.Exec(`UPDATE debts SET name = ?, balance = ?, apr_pct = ?, min_payment = ? WHERE id = ?`,
		d.Name, d.Balance, d.APRPct, d.MinPayment, d.ID)
	if err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}
	return expectOne(res)
}

// DeleteDebt removes a debt by ID.
func (s *Store) DeleteDebt(id string) error {
	res, err := s.db.Exec("DELETE FROM debts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}
	return expectOne(res)
}

// HasPayoffSettings reports whether payoff settings have ever been saved.
func (s *Store) HasPayoffSettings() (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM payoff_settings").Scan(&n); err != nil {
		return false, fmt.Errorf("reading payoff settings: %w", err)
	}
	return n > 0, nil
}

// LoadPayoffSettings returns the saved payoff settings, or the defaults.
func (s *Store) LoadPayoffSettings() (model.PayoffSettings, error) {
	var ps model.PayoffSettings
	var strategy string
	err := s.db.QueryRow("SELECT strategy, extra_payment FROM payoff_settings WHERE id = 1").
		Scan(&strategy, &ps.ExtraPayment)
	if errors.Is(err, sql.ErrNoRows) {
		return pipeline.CleanPayoffSettings(model.PayoffSettings{}), nil
	}
	if err != nil {
		return model.PayoffSettings{}, fmt.Errorf("loading payoff settings: %w", err)
	}
	ps.Strategy = model.Strategy(strategy)
	return pipeline.CleanPayoffSettings(ps), nil
}

// SavePayoffSettings replaces the payoff settings.
func (s *Store) SavePayoffSettings(ps model.PayoffSettings) error {
	ps = pipeline.CleanPayoffSettings(ps)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO payoff_settings (id, strategy, extra_payment, updated_at)
		VALUES (1, ?, ?, ?)`, string(ps.Strategy), ps.ExtraPayment, now())
	if err != nil {
		return fmt.Errorf("saving payoff settings: %w", err)
	}
	return nil
}

// LoadSnapshot reads all planner state and drops rows that fail validation.
func (s *Store) LoadSnapshot() (model.Snapshot, error) {
	var snap model.Snapshot
	var err error

	if snap.Income, err = s.LoadIncome(); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Expenses, err = s.ListExpenses(); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Transactions, err = s.ListTransactions(); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Debts, err = s.ListDebts(); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Payoff, err = s.LoadPayoffSettings(); err != nil {
		return model.Snapshot{}, err
	}

	return pipeline.CleanSnapshot(snap), nil
}
