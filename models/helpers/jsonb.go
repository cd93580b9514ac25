package helpers

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONBMap serbest biçimli jsonb kolonları için map tipi
// (örn: analitik olay metadata'sı).
type JSONBMap map[string]interface{}

func (m JSONBMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBMap{}
		return nil
	}
	b, err := JSONBBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, m)
}

// JSONBBytes sürücüden gelen jsonb değerini []byte'a çevirir.
// pgx jsonb'yi []byte veya string olarak verebilir.
func JSONBBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("jsonb kolonu okunamadı: beklenmeyen tip %T", value)
	}
}
