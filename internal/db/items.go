package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fabswap/internal/models"
	"fabswap/internal/swap"
)

// The store plays the document and transform roles for the swap core.
var (
	_ swap.Document    = (*DB)(nil)
	_ swap.Transformer = (*DB)(nil)
)

// AddItem inserts a placed item. An ID is generated when absent.
func (db *DB) AddItem(item *models.PlacedItem) error {
	if item == nil {
		return fmt.Errorf("no item to add")
	}
	if item.ID == "" {
		id, err := generateItemID()
		if err != nil {
			return fmt.Errorf("generate item id: %w", err)
		}
		item.ID = id
	}

	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	connectors, err := json.Marshal(item.Connectors)
	if err != nil {
		return fmt.Errorf("marshal connectors: %w", err)
	}
	dimensions, err := json.Marshal(item.Dimensions)
	if err != nil {
		return fmt.Errorf("marshal dimensions: %w", err)
	}
	options, err := json.Marshal(item.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	customData, err := json.Marshal(item.CustomData)
	if err != nil {
		return fmt.Errorf("marshal custom data: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO items (id, name, class_id, service_name, button_ref,
			origin_x, origin_y, origin_z, connectors, dimensions, options,
			custom_data, notes, status, section, price_list, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.ClassID, item.ServiceName, item.ButtonRef,
		item.Origin.X, item.Origin.Y, item.Origin.Z,
		string(connectors), string(dimensions), string(options), string(customData),
		item.Notes, item.Status, item.Section, item.PriceList,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item %s: %w", item.ID, err)
	}
	return nil
}

// RemoveItem deletes a placed item by ID.
func (db *DB) RemoveItem(id string) error {
	id = NormalizeItemID(id)
	res, err := db.conn.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("item not found: %s", id)
	}
	return nil
}

// GetItem fetches a placed item by ID.
func (db *DB) GetItem(id string) (*models.PlacedItem, error) {
	id = NormalizeItemID(id)
	row := db.conn.QueryRow(`
		SELECT id, name, class_id, service_name, button_ref,
			origin_x, origin_y, origin_z, connectors, dimensions, options,
			custom_data, notes, status, section, price_list, created_at, updated_at
		FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return item, nil
}

// ListItems returns all placed items, oldest first.
func (db *DB) ListItems() ([]*models.PlacedItem, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, class_id, service_name, button_ref,
			origin_x, origin_y, origin_z, connectors, dimensions, options,
			custom_data, notes, status, section, price_list, created_at, updated_at
		FROM items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*models.PlacedItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Translate shifts an item's origin and every connector endpoint by delta.
func (db *DB) Translate(itemID string, delta models.Point3) error {
	item, err := db.GetItem(itemID)
	if err != nil {
		return err
	}

	item.Origin = item.Origin.Add(delta)
	for i := range item.Connectors {
		item.Connectors[i].End = item.Connectors[i].End.Add(delta)
	}

	connectors, err := json.Marshal(item.Connectors)
	if err != nil {
		return fmt.Errorf("marshal connectors: %w", err)
	}

	_, err = db.conn.Exec(`
		UPDATE items
		SET origin_x = ?, origin_y = ?, origin_z = ?, connectors = ?, updated_at = ?
		WHERE id = ?`,
		item.Origin.X, item.Origin.Y, item.Origin.Z,
		string(connectors), time.Now().UTC(), item.ID)
	if err != nil {
		return fmt.Errorf("translate item %s: %w", item.ID, err)
	}
	return nil
}

// TouchItem bumps an item's updated_at. Used by the view-refresh path.
func (db *DB) TouchItem(id string) error {
	id = NormalizeItemID(id)
	_, err := db.conn.Exec("UPDATE items SET updated_at = ? WHERE id = ?", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("touch item %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.PlacedItem, error) {
	var (
		item       models.PlacedItem
		connectors string
		dimensions string
		options    string
		customData string
	)
	err := row.Scan(&item.ID, &item.Name, &item.ClassID, &item.ServiceName,
		&item.ButtonRef, &item.Origin.X, &item.Origin.Y, &item.Origin.Z,
		&connectors, &dimensions, &options, &customData,
		&item.Notes, &item.Status, &item.Section, &item.PriceList,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(connectors), &item.Connectors); err != nil {
		return nil, fmt.Errorf("parse connectors: %w", err)
	}
	if err := json.Unmarshal([]byte(dimensions), &item.Dimensions); err != nil {
		return nil, fmt.Errorf("parse dimensions: %w", err)
	}
	if err := json.Unmarshal([]byte(options), &item.Options); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	if err := json.Unmarshal([]byte(customData), &item.CustomData); err != nil {
		return nil, fmt.Errorf("parse custom data: %w", err)
	}

	return &item, nil
}
