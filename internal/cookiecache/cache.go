package cookiecache

import (
	"encoding/json"
	"log"
	"os"
)

// Cache persists the last known good session cookies as a flat JSON object.
// It is best effort on both ends: a cache that cannot be read is treated as
// absent, and a cache that cannot be written is only worth a warning.
type Cache struct {
	filePath string
}

func New(filePath string) *Cache {
	return &Cache{filePath: filePath}
}

// Load reads the cached cookie map. The second return value is false when the
// file is missing, unreadable or not a JSON object.
func (c *Cache) Load() (map[string]string, bool) {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read cookie cache: %v", err)
		}
		return nil, false
	}

	var cookies map[string]string
	if err := json.Unmarshal(data, &cookies); err != nil {
		log.Printf("⚠️ Failed to parse cookie cache: %v", err)
		return nil, false
	}
	if len(cookies) == 0 {
		return nil, false
	}
	return cookies, true
}

// Save overwrites the cache with the given cookie map.
func (c *Cache) Save(cookies map[string]string) {
	data, err := json.Marshal(cookies)
	if err != nil {
		log.Printf("⚠️ Failed to marshal cookies: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		log.Printf("⚠️ Failed to write cookie cache: %v", err)
	}
}
