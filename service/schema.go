package service

import (
	"encoding/json"
	"reflect"
	"sync"

	"tripplanner/models"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
)

var (
	tripSchemaOnce sync.Once
	tripSchemaText string
)

var (
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	itemTypeType = reflect.TypeOf(models.ItemType(""))
	currencyType = reflect.TypeOf(models.Currency(""))
)

func enumSchema[T ~string](values []T) *jsonschema.Schema {
	enum := make([]any, 0, len(values))
	for _, v := range values {
		enum = append(enum, string(v))
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

// TripSchemaJSON 由 models.Trip 反射生成的 JSON Schema，写进系统提示词作为输出契约
func TripSchemaJSON() string {
	tripSchemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
			Mapper: func(t reflect.Type) *jsonschema.Schema {
				switch t {
				case decimalType:
					return &jsonschema.Schema{Type: "number", Minimum: json.Number("0")}
				case itemTypeType:
					return enumSchema(models.ItemTypes())
				case currencyType:
					return enumSchema(models.Currencies())
				}
				return nil
			},
		}
		schema := r.Reflect(&models.Trip{})
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			panic(err)
		}
		tripSchemaText = string(data)
	})
	return tripSchemaText
}
