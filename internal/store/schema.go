package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS quotes (
    id                   TEXT PRIMARY KEY,
    created_at           TEXT NOT NULL,
    brand                TEXT NOT NULL,
    room                 TEXT NOT NULL,
    tier                 TEXT NOT NULL,
    selection            TEXT NOT NULL,
    add_ons              TEXT NOT NULL,
    merchandise          REAL NOT NULL,
    delivery             REAL NOT NULL,
    assembly             REAL NOT NULL,
    protection           REAL NOT NULL,
    promo                REAL NOT NULL,
    sub_before_tax       REAL NOT NULL,
    tax                  REAL NOT NULL,
    contingency          REAL NOT NULL,
    total                REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS quote_lines (
    quote_id             TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    item_key             TEXT NOT NULL,
    label                TEXT NOT NULL,
    range_min            REAL NOT NULL,
    range_max            REAL NOT NULL,
    quantity             INTEGER NOT NULL,
    unit_price           REAL NOT NULL,
    subtotal             REAL NOT NULL,
    PRIMARY KEY (quote_id, position)
);

CREATE INDEX IF NOT EXISTS idx_quotes_created ON quotes(created_at);
`
