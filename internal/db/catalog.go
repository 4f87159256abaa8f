package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fabswap/internal/models"
	"fabswap/internal/swap"
)

var _ swap.Catalog = (*DB)(nil)

// CreateService inserts a catalog service.
func (db *DB) CreateService(name string) (*models.Service, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("service name required")
	}
	id, err := generateServiceID()
	if err != nil {
		return nil, fmt.Errorf("generate service id: %w", err)
	}
	if _, err := db.conn.Exec("INSERT INTO services (id, name) VALUES (?, ?)", id, name); err != nil {
		return nil, fmt.Errorf("insert service %s: %w", name, err)
	}
	return &models.Service{ID: id, Name: name}, nil
}

// CreateButton inserts a button under a service, appended in catalog order.
func (db *DB) CreateButton(serviceID, name string) (*models.Button, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("button name required")
	}
	id, err := generateButtonID()
	if err != nil {
		return nil, fmt.Errorf("generate button id: %w", err)
	}

	var ord int
	if err := db.conn.QueryRow(
		"SELECT COALESCE(MAX(ord), -1) + 1 FROM buttons WHERE service_id = ?",
		serviceID).Scan(&ord); err != nil {
		return nil, fmt.Errorf("next button order: %w", err)
	}

	if _, err := db.conn.Exec(
		"INSERT INTO buttons (id, service_id, name, ord) VALUES (?, ?, ?, ?)",
		id, serviceID, name, ord); err != nil {
		return nil, fmt.Errorf("insert button %s: %w", name, err)
	}
	return &models.Button{ID: id, ServiceID: serviceID, Name: name}, nil
}

// CreateSlot inserts a slot with its item definition, appended after the
// button's existing slots.
func (db *DB) CreateSlot(buttonID, path, filename string, definition *models.PlacedItem) (*models.Slot, error) {
	id, err := generateSlotID()
	if err != nil {
		return nil, fmt.Errorf("generate slot id: %w", err)
	}

	var idx int
	if err := db.conn.QueryRow(
		"SELECT COALESCE(MAX(idx), -1) + 1 FROM slots WHERE button_id = ?",
		buttonID).Scan(&idx); err != nil {
		return nil, fmt.Errorf("next slot index: %w", err)
	}

	def := "{}"
	if definition != nil {
		data, err := json.Marshal(definition)
		if err != nil {
			return nil, fmt.Errorf("marshal slot definition: %w", err)
		}
		def = string(data)
	}

	if _, err := db.conn.Exec(
		"INSERT INTO slots (id, button_id, idx, path, filename, definition) VALUES (?, ?, ?, ?, ?, ?)",
		id, buttonID, idx, path, filename, def); err != nil {
		return nil, fmt.Errorf("insert slot %s: %w", path, err)
	}
	return &models.Slot{ID: id, ButtonID: buttonID, Index: idx, Path: path, Filename: filename}, nil
}

// ListServices returns all services in name order.
func (db *DB) ListServices() ([]*models.Service, error) {
	rows, err := db.conn.Query("SELECT id, name FROM services ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("list services: %w", err)
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

// GetService fetches a service by name.
func (db *DB) GetService(name string) (*models.Service, error) {
	var s models.Service
	err := db.conn.QueryRow("SELECT id, name FROM services WHERE name = ?", name).
		Scan(&s.ID, &s.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", name, err)
	}
	return &s, nil
}

// FindButton fetches a button by name within a service.
func (db *DB) FindButton(serviceName, buttonName string) (*models.Button, error) {
	var b models.Button
	err := db.conn.QueryRow(`
		SELECT b.id, b.service_id, b.name
		FROM buttons b JOIN services s ON s.id = b.service_id
		WHERE s.name = ? AND b.name = ?`, serviceName, buttonName).
		Scan(&b.ID, &b.ServiceID, &b.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("button not found: %s (service %s)", buttonName, serviceName)
	}
	if err != nil {
		return nil, fmt.Errorf("find button %s: %w", buttonName, err)
	}
	return &b, nil
}

// ServiceButtons returns the button tree of a service in catalog order.
func (db *DB) ServiceButtons(serviceName string) ([]swap.ButtonSlots, error) {
	rows, err := db.conn.Query(`
		SELECT b.id, b.service_id, b.name
		FROM buttons b JOIN services s ON s.id = b.service_id
		WHERE s.name = ? ORDER BY b.ord`, serviceName)
	if err != nil {
		return nil, fmt.Errorf("service buttons %s: %w", serviceName, err)
	}
	defer rows.Close()

	var tree []swap.ButtonSlots
	for rows.Next() {
		var b models.Button
		if err := rows.Scan(&b.ID, &b.ServiceID, &b.Name); err != nil {
			return nil, fmt.Errorf("service buttons %s: %w", serviceName, err)
		}
		tree = append(tree, swap.ButtonSlots{Button: &b})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tree {
		slots, err := db.ButtonSlots(tree[i].Button.ID)
		if err != nil {
			return nil, err
		}
		tree[i].Slots = slots
	}
	return tree, nil
}

// ButtonSlots returns a button's slots in index order.
func (db *DB) ButtonSlots(buttonID string) ([]models.Slot, error) {
	rows, err := db.conn.Query(`
		SELECT id, button_id, idx, path, filename
		FROM slots WHERE button_id = ? ORDER BY idx`, buttonID)
	if err != nil {
		return nil, fmt.Errorf("button slots %s: %w", buttonID, err)
	}
	defer rows.Close()

	var slots []models.Slot
	for rows.Next() {
		var s models.Slot
		if err := rows.Scan(&s.ID, &s.ButtonID, &s.Index, &s.Path, &s.Filename); err != nil {
			return nil, fmt.Errorf("button slots %s: %w", buttonID, err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// LoadFromSlot materializes a fresh placed item from a slot's definition.
// The item gets a new identity and is not added to the document here.
// carryDefaults false drops the catalog's default dimensions and options so
// a following property transfer starts from a blank item.
func (db *DB) LoadFromSlot(button *models.Button, slotIndex int, carryDefaults bool) (*models.PlacedItem, error) {
	if button == nil {
		return nil, fmt.Errorf("no button given")
	}

	var (
		path       string
		filename   string
		definition string
	)
	err := db.conn.QueryRow(
		"SELECT path, filename, definition FROM slots WHERE button_id = ? AND idx = ?",
		button.ID, slotIndex).Scan(&path, &filename, &definition)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("button %s has no slot %d", button.Name, slotIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %d of %s: %w", slotIndex, button.Name, err)
	}

	var item models.PlacedItem
	if err := json.Unmarshal([]byte(definition), &item); err != nil {
		return nil, fmt.Errorf("parse definition %s: %w", filename, err)
	}

	id, err := generateItemID()
	if err != nil {
		return nil, fmt.Errorf("generate item id: %w", err)
	}
	item.ID = id
	item.ButtonRef = button.Name
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt

	var serviceName string
	if err := db.conn.QueryRow(
		"SELECT name FROM services WHERE id = ?", button.ServiceID).Scan(&serviceName); err == nil {
		item.ServiceName = serviceName
	}

	if item.Name == "" {
		item.Name = path
	}
	if !carryDefaults {
		item.Dimensions = nil
		item.Options = nil
	}

	return &item, nil
}
