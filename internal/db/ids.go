package db

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const (
	itemIDPrefix    = "it-"
	serviceIDPrefix = "sv-"
	buttonIDPrefix  = "bt-"
	slotIDPrefix    = "sl-"
)

// NormalizeItemID ensures an item ID has the it- prefix.
// Accepts bare hex IDs like "abc123" and returns "it-abc123".
func NormalizeItemID(id string) string {
	if id == "" {
		return id
	}
	if !strings.HasPrefix(id, itemIDPrefix) {
		return itemIDPrefix + id
	}
	return id
}

// generateID returns prefix + n random hex bytes.
func generateID(prefix string, n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return prefix + hex.EncodeToString(bytes), nil
}

func generateItemID() (string, error)    { return generateID(itemIDPrefix, 3) }
func generateServiceID() (string, error) { return generateID(serviceIDPrefix, 2) }
func generateButtonID() (string, error)  { return generateID(buttonIDPrefix, 3) }
func generateSlotID() (string, error)    { return generateID(slotIDPrefix, 3) }
