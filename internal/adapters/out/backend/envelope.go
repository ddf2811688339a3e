package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
)

// Бэкенд отвечает по-разному: голым массивом, {"success": true, "data": ...}
// или объектом с единственным полем-массивом ({"patients": [...]}).

var errUnexpectedShape = errors.New("unexpected response shape")

func decodeList[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []T{}, nil
	}

	if data[0] == '[' {
		items := make([]T, 0)
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	if raw, ok := envelope["data"]; ok {
		return decodeList[T](raw)
	}

	// Первое поле-массив в алфавитном порядке ключей
	keys := make([]string, 0, len(envelope))
	for key := range envelope {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		raw := bytes.TrimSpace(envelope[key])
		if len(raw) > 0 && raw[0] == '[' {
			return decodeList[T](raw)
		}
	}

	return nil, errUnexpectedShape
}

func decodeObject[T any](data []byte) (*T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, errUnexpectedShape
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	if raw, ok := envelope["data"]; ok {
		return decodeObject[T](raw)
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
