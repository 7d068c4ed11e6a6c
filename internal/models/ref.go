package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefID is a foreign reference stored either as a hex string or as an
// ObjectID. It always decodes to the hex string form.
type RefID string

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (r *RefID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*r = RefID(raw.StringValue())
	case bsontype.ObjectID:
		*r = RefID(raw.ObjectID().Hex())
	case bsontype.Null, bsontype.Undefined:
		*r = ""
	default:
		return fmt.Errorf("unsupported bson type %s for reference id", t)
	}
	return nil
}

// RefMatchValues expands ids into the values an $in clause needs to match a
// RefID field regardless of its storage form.
func RefMatchValues(ids ...string) []interface{} {
	out := make([]interface{}, 0, len(ids)*2)
	for _, id := range ids {
		out = append(out, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
