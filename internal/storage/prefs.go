package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// DefaultNamespace holds the preferences of the local player.
const DefaultNamespace = "local"

// Prefs is a key/value view of the prefs table scoped to one namespace.
// SSH sessions use the user name as namespace so players do not share
// progress.
type Prefs struct {
	store     *Store
	namespace string
}

// Prefs returns the preference view for namespace.
func (s *Store) Prefs(namespace string) *Prefs {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Prefs{store: s, namespace: namespace}
}

// Namespace returns the scope of the view.
func (p *Prefs) Namespace() string {
	return p.namespace
}

func (p *Prefs) get(key string) (string, bool, error) {
	var v string
	err := p.store.db.QueryRow(
		"SELECT value FROM prefs WHERE namespace = ? AND key = ?",
		p.namespace, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read pref %s: %w", key, err)
	}
	return v, true, nil
}

func (p *Prefs) set(key, value string) error {
	_, err := p.store.db.Exec(
		`INSERT INTO prefs (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		p.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write pref %s: %w", key, err)
	}
	return nil
}

// String returns the stored value or def when missing.
func (p *Prefs) String(key string, def string) (string, error) {
	v, ok, err := p.get(key)
	if err != nil || !ok {
		return def, err
	}
	return v, nil
}

// SetString stores a string value.
func (p *Prefs) SetString(key string, v string) error {
	return p.set(key, v)
}

// Int returns the stored value or def when missing. A malformed value is an
// error and yields def.
func (p *Prefs) Int(key string, def int) (int, error) {
	v, ok, err := p.get(key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("storage: pref %s is not an integer: %w", key, err)
	}
	return n, nil
}

// SetInt stores an integer value.
func (p *Prefs) SetInt(key string, v int) error {
	return p.set(key, strconv.Itoa(v))
}

// Bool returns the stored value or def when missing.
func (p *Prefs) Bool(key string, def bool) (bool, error) {
	v, ok, err := p.get(key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("storage: pref %s is not a bool: %w", key, err)
	}
	return b, nil
}

// SetBool stores a boolean value.
func (p *Prefs) SetBool(key string, v bool) error {
	return p.set(key, strconv.FormatBool(v))
}

// Delete removes a key.
func (p *Prefs) Delete(key string) error {
	_, err := p.store.db.Exec("DELETE FROM prefs WHERE namespace = ? AND key = ?", p.namespace, key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete pref %s: %w", key, err)
	}
	return nil
}

// All returns every key/value pair of the namespace.
func (p *Prefs) All() (map[string]string, error) {
	rows, err := p.store.db.Query("SELECT key, value FROM prefs WHERE namespace = ?", p.namespace)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list prefs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan pref: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
