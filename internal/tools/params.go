package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloud-ru/fincalc-go/internal/validators"
)

func invalidParameter(name string) error {
	return fmt.Errorf("%w: invalid parameter: %s", validators.ErrInvalidInput, name)
}

// numberParam извлекает обязательный числовой параметр
func numberParam(params map[string]interface{}, name string) (float64, error) {
	value, ok := params[name]
	if !ok || value == nil {
		return 0, invalidParameter(name)
	}

	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, invalidParameter(name)
		}
		return f, nil
	}
	return 0, invalidParameter(name)
}

// optionalNumberParam извлекает числовой параметр или возвращает def, если его нет
func optionalNumberParam(params map[string]interface{}, name string, def float64) (float64, error) {
	if value, ok := params[name]; !ok || value == nil {
		return def, nil
	}
	return numberParam(params, name)
}

// stringParam извлекает обязательный непустой строковый параметр
func stringParam(params map[string]interface{}, name string) (string, error) {
	s, err := optionalStringParam(params, name)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", invalidParameter(name)
	}
	return s, nil
}

func optionalStringParam(params map[string]interface{}, name string) (string, error) {
	value, ok := params[name]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", invalidParameter(name)
	}
	return strings.TrimSpace(s), nil
}
