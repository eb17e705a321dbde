package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mintyhq/minty-api/internal/domain"
)

// ErrReadOnlyKind is returned when a write targets a kind that callers
// cannot create or update.
var ErrReadOnlyKind = errors.New("entity kind is read-only")

// FieldType is the wire type of a writable field.
type FieldType int

const (
	// Text is a JSON string.
	Text FieldType = iota
	// Int is a JSON integer.
	Int
	// Reference is the public id of another entity, as a JSON string.
	Reference
	// Secret is a JSON string that is never rendered back.
	Secret
)

// WriteField is one whitelisted input field.
type WriteField struct {
	Name string
	Type FieldType
	// Kind is the referenced kind of a Reference field.
	Kind domain.Kind
	// Required fields must be present on create.
	Required bool
	// Nullable references accept null, which clears the relation.
	Nullable bool
}

var writable = map[domain.Kind][]WriteField{
	domain.KindUser: {
		{Name: "username", Type: Text, Required: true},
		{Name: "email", Type: Text},
		{Name: "password", Type: Secret, Required: true},
		{Name: "guild", Type: Reference, Kind: domain.KindGuild, Nullable: true},
	},
	domain.KindGuild: {
		{Name: "name", Type: Text, Required: true},
		{Name: "description", Type: Text},
		{Name: "owner", Type: Reference, Kind: domain.KindUser, Required: true},
	},
	domain.KindMarketplaceItem: {
		{Name: "name", Type: Text, Required: true},
		{Name: "description", Type: Text},
		{Name: "price", Type: Int, Required: true},
		{Name: "seller", Type: Reference, Kind: domain.KindUser, Required: true},
	},
}

// WriteFields returns the whitelist of kind.
func WriteFields(kind domain.Kind) ([]WriteField, error) {
	fields, ok := writable[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReadOnlyKind, kind)
	}
	return fields, nil
}

// Write is a decoded write payload. Values holds a string for Text and
// Secret fields, an int64 for Int fields and a uuid.UUID for Reference
// fields, where uuid.Nil means null.
type Write struct {
	Kind   domain.Kind
	Values map[string]any
}

// DecodeWrite decodes a JSON object into a Write for kind. Only whitelisted
// fields are kept, so read-only fields such as id and created_at and
// unknown fields are dropped; a whitelisted field of the wrong type is a
// ValidationError naming the field.
func DecodeWrite(kind domain.Kind, body []byte) (Write, error) {
	fields, err := WriteFields(kind)
	if err != nil {
		return Write{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Write{}, domain.NewValidationError("", "request body must be a JSON object", nil)
	}

	w := Write{Kind: kind, Values: map[string]any{}}
	for _, f := range fields {
		msg, ok := raw[f.Name]
		if !ok {
			continue
		}
		v, err := decodeField(f, msg)
		if err != nil {
			return Write{}, err
		}
		w.Values[f.Name] = v
	}
	return w, nil
}

func decodeField(f WriteField, msg json.RawMessage) (any, error) {
	isNull := bytes.Equal(bytes.TrimSpace(msg), []byte("null"))

	switch f.Type {
	case Int:
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		var n json.Number
		if isNull || dec.Decode(&n) != nil {
			return nil, domain.NewValidationError(f.Name, "must be an integer", nil)
		}
		v, err := n.Int64()
		if err != nil {
			return nil, domain.NewValidationError(f.Name, "must be an integer", nil)
		}
		return v, nil

	case Reference:
		if isNull {
			if !f.Nullable {
				return nil, domain.NewValidationError(f.Name, "this field may not be null", nil)
			}
			return uuid.Nil, nil
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, domain.NewValidationError(f.Name, "must be an id", domain.ErrInvalidID)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, domain.NewValidationError(f.Name, "must be a valid id", domain.ErrInvalidID)
		}
		// The nil id is how a cleared reference travels to the service.
		if id == uuid.Nil && !f.Nullable {
			return nil, domain.NewValidationError(f.Name, "this field may not be null", nil)
		}
		return id, nil

	default:
		var s string
		if isNull || json.Unmarshal(msg, &s) != nil {
			return nil, domain.NewValidationError(f.Name, "must be a string", nil)
		}
		return s, nil
	}
}

// Has reports whether the payload set name.
func (w Write) Has(name string) bool {
	_, ok := w.Values[name]
	return ok
}

// Text returns a Text or Secret value.
func (w Write) Text(name string) (string, bool) {
	s, ok := w.Values[name].(string)
	return s, ok
}

// Int returns an Int value.
func (w Write) Int(name string) (int64, bool) {
	n, ok := w.Values[name].(int64)
	return n, ok
}

// Ref returns a Reference value. A null reference is uuid.Nil.
func (w Write) Ref(name string) (uuid.UUID, bool) {
	id, ok := w.Values[name].(uuid.UUID)
	return id, ok
}

// Fields returns the names set by the payload, sorted.
func (w Write) Fields() []string {
	out := make([]string, 0, len(w.Values))
	for name := range w.Values {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CheckRequired reports the first required field the payload is missing.
func (w Write) CheckRequired() error {
	fields, err := WriteFields(w.Kind)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if f.Required && !w.Has(f.Name) {
			return domain.NewValidationError(f.Name, "this field is required", nil)
		}
	}
	return nil
}
