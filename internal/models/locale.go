package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LocaleMap is a language-code keyed map of translated text, stored as JSON.
type LocaleMap map[string]string

func (m LocaleMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *LocaleMap) Scan(value interface{}) error {
	b, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*m = LocaleMap{}
		return nil
	}
	out := LocaleMap{}
	if err := json.Unmarshal(b, &out); err != nil {
		// Persisted value is not a JSON object; fall back to an empty map
		// so callers always see a usable mapping.
		*m = LocaleMap{}
		return nil
	}
	*m = out
	return nil
}

// MarkdownDoc is the per-language value shape of Project.ContentI18n.
type MarkdownDoc struct {
	MD string `json:"md"`
}

// LocaleDocMap is a language-code keyed map of markdown documents.
type LocaleDocMap map[string]MarkdownDoc

func (m LocaleDocMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *LocaleDocMap) Scan(value interface{}) error {
	b, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*m = LocaleDocMap{}
		return nil
	}
	out := LocaleDocMap{}
	if err := json.Unmarshal(b, &out); err != nil {
		*m = LocaleDocMap{}
		return nil
	}
	*m = out
	return nil
}

// MDMap flattens the doc map to language→markdown text, dropping entries
// with an empty body.
func (m LocaleDocMap) MDMap() map[string]string {
	out := make(map[string]string, len(m))
	for lang, doc := range m {
		if doc.MD != "" {
			out[lang] = doc.MD
		}
	}
	return out
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}
}
