package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/GLee998/church-database-bot/internal/models"
)

// maxLimit верхняя граница limit в запросе
const maxLimit = 500

// Parse decodes the raw AI answer strictly. Unknown, differently cased or repeated keys,
// unknown operations, fields or operators, trailing data and the "unsupported" operation
// all yield ErrUnrecognizedIntent.
// A single surrounding Markdown code fence is tolerated.
func Parse(raw string, schema *models.Schema) (*models.QueryIntent, error) {
	body := stripFence(strings.TrimSpace(raw))
	if body == "" {
		return nil, fmt.Errorf("%w: empty answer", ErrUnrecognizedIntent)
	}

	// Ключи сверяем побайтно до декодирования в структуру
	if err := checkKeys(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedIntent, err)
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()

	var qi models.QueryIntent
	if err := dec.Decode(&qi); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedIntent, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after intent", ErrUnrecognizedIntent)
	}

	if qi.Operation == models.OpUnsupported {
		return nil, fmt.Errorf("%w: question is outside the supported operations", ErrUnrecognizedIntent)
	}
	if !knownOperation(qi.Operation) {
		return nil, fmt.Errorf("%w: unknown operation %q", ErrUnrecognizedIntent, qi.Operation)
	}

	for _, p := range qi.Predicates {
		if _, ok := schema.Field(p.Field); !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrUnrecognizedIntent, p.Field)
		}
		if !knownOperator(p.Operator) {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrUnrecognizedIntent, p.Operator)
		}
	}

	return &qi, nil
}

var (
	intentKeys    = map[string]bool{"operation": true, "name": true, "predicates": true, "limit": true, "window_days": true}
	predicateKeys = map[string]bool{"field": true, "operator": true, "value": true, "values": true}
)

// checkKeys walks the JSON tokens of body and rejects keys that are not spelled exactly
// as in the vocabulary or that appear twice in one object.
func checkKeys(body string) error {
	dec := json.NewDecoder(strings.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("intent is not a JSON object")
	}
	return walkObject(dec, intentKeys)
}

// walkObject consumes an object whose opening brace was already read
func walkObject(dec *json.Decoder, allowed map[string]bool) error {
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if !allowed[key] {
			return fmt.Errorf("unknown key %q", key)
		}
		if seen[key] {
			return fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = true

		var nested map[string]bool
		if key == "predicates" {
			nested = predicateKeys
		}
		if err := walkValue(dec, nested); err != nil {
			return err
		}
	}
	_, err := dec.Token() // '}'
	return err
}

// walkValue consumes one value. Objects inside arrays use the elements key set;
// objects anywhere else are rejected.
func walkValue(dec *json.Decoder, elements map[string]bool) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch d {
	case '[':
		for dec.More() {
			if err := walkElement(dec, elements); err != nil {
				return err
			}
		}
		_, err = dec.Token() // ']'
		return err
	default:
		return fmt.Errorf("unexpected %v", d)
	}
}

func walkElement(dec *json.Decoder, allowed map[string]bool) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	if d == '{' && allowed != nil {
		return walkObject(dec, allowed)
	}
	return fmt.Errorf("unexpected %v", d)
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// Убираем метку языка: ```json
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 && !strings.ContainsAny(inner[:nl], "{[") {
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}

func knownOperation(op models.Operation) bool {
	for _, known := range models.Operations {
		if op == known {
			return true
		}
	}
	return false
}

func knownOperator(op models.Operator) bool {
	switch op {
	case models.OperatorEq, models.OperatorContains, models.OperatorBefore, models.OperatorAfter,
		models.OperatorBetween, models.OperatorMonth, models.OperatorIn:
		return true
	default:
		return false
	}
}
