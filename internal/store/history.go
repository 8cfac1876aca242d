// Package store provides a SQLite-backed history of saved quotes.
// History is a record only; it never feeds back into estimates.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/roombudget/internal/catalog"
	"github.com/theirongolddev/roombudget/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound is returned when no quote matches an ID.
	ErrNotFound = errors.New("quote not found")
	// ErrAmbiguous is returned when an ID prefix matches several quotes.
	ErrAmbiguous = errors.New("quote id prefix is ambiguous")
)

// Quote is a saved estimate.
type Quote struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Estimate  model.Estimate `json:"estimate"`
}

// History provides SQLite-backed quote storage.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db, now: time.Now}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// SaveQuote records an estimate under a fresh UUID.
func (h *History) SaveQuote(est model.Estimate) (Quote, error) {
	q := Quote{
		ID:        uuid.NewString(),
		CreatedAt: h.now().UTC(),
		Estimate:  est,
	}

	sel, err := json.Marshal(est.Session.Selection)
	if err != nil {
		return Quote{}, fmt.Errorf("encoding selection: %w", err)
	}
	addOns, err := json.Marshal(est.Session.AddOns)
	if err != nil {
		return Quote{}, fmt.Errorf("encoding add-ons: %w", err)
	}

	tx, err := h.db.Begin()
	if err != nil {
		return Quote{}, err
	}
	defer func() { _ = tx.Rollback() }()

	t := est.Totals
	_, err = tx.Exec(`INSERT INTO quotes
		(id, created_at, brand, room, tier, selection, add_ons,
		 merchandise, delivery, assembly, protection, promo,
		 sub_before_tax, tax, contingency, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.CreatedAt.Format(time.RFC3339Nano), est.Session.Brand, est.Session.Room,
		string(est.Session.Tier), string(sel), string(addOns),
		t.Merchandise, t.Delivery, t.Assembly, t.Protection, t.Promo,
		t.SubBeforeTax, t.Tax, t.Contingency, t.Total,
	)
	if err != nil {
		return Quote{}, fmt.Errorf("inserting quote: %w", err)
	}

	for i, l := range est.Lines {
		_, err = tx.Exec(`INSERT INTO quote_lines
			(quote_id, position, item_key, label, range_min, range_max,
			 quantity, unit_price, subtotal)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.ID, i, l.Key, l.Label, l.Range.Min, l.Range.Max,
			l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			return Quote{}, fmt.Errorf("inserting line %s: %w", l.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Quote{}, err
	}
	return q, nil
}

const quoteColumns = `id, created_at, brand, room, tier, selection, add_ons,
	merchandise, delivery, assembly, protection, promo,
	sub_before_tax, tax, contingency, total`

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(row scanner) (Quote, error) {
	var q Quote
	var created, tier, sel, addOns string
	s := &q.Estimate.Session
	t := &q.Estimate.Totals
	err := row.Scan(&q.ID, &created, &s.Brand, &s.Room, &tier, &sel, &addOns,
		&t.Merchandise, &t.Delivery, &t.Assembly, &t.Protection, &t.Promo,
		&t.SubBeforeTax, &t.Tax, &t.Contingency, &t.Total)
	if err != nil {
		return Quote{}, err
	}
	s.Tier = model.Tier(tier)
	q.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	if err := json.Unmarshal([]byte(sel), &s.Selection); err != nil {
		return Quote{}, fmt.Errorf("decoding selection of %s: %w", q.ID, err)
	}
	if err := json.Unmarshal([]byte(addOns), &s.AddOns); err != nil {
		return Quote{}, fmt.Errorf("decoding add-ons of %s: %w", q.ID, err)
	}
	return q, nil
}

// ListQuotes returns the newest quotes first, without their lines.
// A limit <= 0 returns every quote.
func (h *History) ListQuotes(limit int) ([]Quote, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.Query(`SELECT `+quoteColumns+` FROM quotes
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var quotes []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// GetQuote loads one quote with its lines. id may be a unique prefix.
func (h *History) GetQuote(id string) (Quote, error) {
	rows, err := h.db.Query(`SELECT `+quoteColumns+` FROM quotes
		WHERE substr(id, 1, ?) = ? LIMIT 2`, len(id), id)
	if err != nil {
		return Quote{}, err
	}
	var matches []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			_ = rows.Close()
			return Quote{}, err
		}
		matches = append(matches, q)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return Quote{}, err
	}

	switch len(matches) {
	case 0:
		return Quote{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 2:
		return Quote{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}

	q := matches[0]
	q.Estimate.Lines, err = h.loadLines(q.ID)
	return q, err
}

func (h *History) loadLines(quoteID string) ([]model.Line, error) {
	rows, err := h.db.Query(`SELECT item_key, label, range_min, range_max,
		quantity, unit_price, subtotal
		FROM quote_lines WHERE quote_id = ? ORDER BY position`, quoteID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	lines := []model.Line{}
	for rows.Next() {
		var l model.Line
		var r catalog.Range
		if err := rows.Scan(&l.Key, &l.Label, &r.Min, &r.Max, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, err
		}
		l.Range = r
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// DeleteAll removes every saved quote and returns how many were removed.
func (h *History) DeleteAll() (int64, error) {
	res, err := h.db.Exec("DELETE FROM quotes")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of saved quotes.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM quotes").Scan(&count)
	return count, err
}
