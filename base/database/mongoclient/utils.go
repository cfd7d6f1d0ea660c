package mongoclient

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

// MakeBsonM turns a struct (or pointer to one) into a bson.M keyed by bson tags.
// Zero fields are dropped and non-nil pointers are dereferenced, which makes it
// usable both for id selectors and for partial updaters.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.ValueOf(patchable)
	if val.Kind() == reflect.Ptr && val.Elem().Kind() == reflect.Struct {
		val = val.Elem()
	}

	bsonM := bson.M{}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		tag, err := bsoncodec.DefaultStructTagParser(val.Type().Field(i))
		if err != nil {
			return nil, err
		}

		switch {
		case tag.Skip, !field.CanInterface(), field.IsZero():
			continue
		case field.Kind() == reflect.Ptr:
			bsonM[tag.Name] = field.Elem().Interface()
		default:
			bsonM[tag.Name] = field.Interface()
		}
	}

	return bsonM, nil
}
