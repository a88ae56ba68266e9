package resource

import (
	"encoding/json"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	apperrors "busline/pkg/errors"
)

// SetFields turns a partial JSON body into the $set document for an update:
// only keys present in the request are touched, and each value is decoded
// into the entity's field type so foreign keys and timestamps get their
// proper BSON representation. Decoding per supplied key keeps zero values
// (price 0, empty status) updatable despite omitempty storage tags. The
// document id and server-stamped creation time are never updatable.
func SetFields[T any](body []byte) (bson.M, error) {
	var supplied map[string]json.RawMessage
	if err := json.Unmarshal(body, &supplied); err != nil {
		return nil, apperrors.InvalidInput("Invalid request body")
	}

	fields := updatableFields(reflect.TypeOf((*T)(nil)).Elem())

	set := bson.M{}
	for key, raw := range supplied {
		field, ok := fields[key]
		if !ok {
			continue
		}
		value := reflect.New(field.typ)
		if err := json.Unmarshal(raw, value.Interface()); err != nil {
			return nil, apperrors.InvalidInput("Invalid request body")
		}
		set[field.bsonKey] = value.Elem().Interface()
	}

	if len(set) == 0 {
		return nil, apperrors.InvalidInput("No updatable fields supplied")
	}

	return set, nil
}

type fieldSpec struct {
	bsonKey string
	typ     reflect.Type
}

// updatableFields maps the JSON key of every mutable field to its BSON key
// and type, flattening embedded structs. The id and created_at fields are
// left out so callers cannot overwrite them.
func updatableFields(t reflect.Type) map[string]fieldSpec {
	fields := make(map[string]fieldSpec)
	collectFields(t, fields)
	return fields
}

func collectFields(t reflect.Type, fields map[string]fieldSpec) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collectFields(field.Type, fields)
			continue
		}

		jsonKey := tagKey(field.Tag.Get("json"), field.Name)
		bsonKey := tagKey(field.Tag.Get("bson"), field.Name)
		if jsonKey == "-" || bsonKey == "-" {
			continue
		}
		if bsonKey == "_id" || bsonKey == "created_at" {
			continue
		}

		fields[jsonKey] = fieldSpec{bsonKey: bsonKey, typ: field.Type}
	}
}

func tagKey(tag, fieldName string) string {
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return strings.ToLower(fieldName)
}
