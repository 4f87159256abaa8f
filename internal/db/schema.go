package db

// SchemaVersion is the current database schema version
const SchemaVersion = 2

const schema = `
-- Placed items (the live document)
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    class_id TEXT DEFAULT '',
    service_name TEXT DEFAULT '',
    button_ref TEXT DEFAULT '',
    origin_x REAL DEFAULT 0,
    origin_y REAL DEFAULT 0,
    origin_z REAL DEFAULT 0,
    connectors TEXT DEFAULT '[]',
    dimensions TEXT DEFAULT '{}',
    options TEXT DEFAULT '{}',
    custom_data TEXT DEFAULT '{}',
    notes TEXT DEFAULT '',
    status TEXT DEFAULT '',
    section TEXT DEFAULT '',
    price_list TEXT DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Catalog services
CREATE TABLE IF NOT EXISTS services (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

-- Catalog buttons, ordered within a service
CREATE TABLE IF NOT EXISTS buttons (
    id TEXT PRIMARY KEY,
    service_id TEXT NOT NULL,
    name TEXT NOT NULL,
    ord INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (service_id) REFERENCES services(id)
);

-- Catalog slots: one loadable item definition per row
CREATE TABLE IF NOT EXISTS slots (
    id TEXT PRIMARY KEY,
    button_id TEXT NOT NULL,
    idx INTEGER NOT NULL,
    path TEXT NOT NULL,
    filename TEXT NOT NULL,
    definition TEXT NOT NULL DEFAULT '{}',
    FOREIGN KEY (button_id) REFERENCES buttons(id)
);

-- Completed swap records, newest-first window for undo rehydration
CREATE TABLE IF NOT EXISTS swap_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    record TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Schema metadata
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_service ON items(service_name);
CREATE INDEX IF NOT EXISTS idx_buttons_service ON buttons(service_id, ord);
CREATE INDEX IF NOT EXISTS idx_slots_button ON slots(button_id, idx);
`
