package script

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"tabkit/data"
)

// Symbols exposes the exported API of tabkit/data to interpreted code.
var Symbols = interp.Exports{
	"tabkit/data/data": {
		// functions
		"New":              reflect.ValueOf(data.New),
		"NewTable":         reflect.ValueOf(data.NewTable),
		"NewFromPairs":     reflect.ValueOf(data.NewFromPairs),
		"NewFromMap":       reflect.ValueOf(data.NewFromMap),
		"NewFromMatrix":    reflect.ValueOf(data.NewFromMatrix),
		"FromRecord":       reflect.ValueOf(data.FromRecord),
		"FromArrowTable":   reflect.ValueOf(data.FromArrowTable),
		"ReadCSV":          reflect.ValueOf(data.ReadCSV),
		"ReadCSVFile":      reflect.ValueOf(data.ReadCSVFile),
		"ReadJSON":         reflect.ValueOf(data.ReadJSON),
		"ReadJSONFile":     reflect.ValueOf(data.ReadJSONFile),
		"WriteCSV":         reflect.ValueOf(data.WriteCSV),
		"WriteCSVFile":     reflect.ValueOf(data.WriteCSVFile),
		"WriteJSON":        reflect.ValueOf(data.WriteJSON),
		"WriteJSONFile":    reflect.ValueOf(data.WriteJSONFile),
		"DefaultCSVConfig": reflect.ValueOf(data.DefaultCSVConfig),
		"ParseQuery":       reflect.ValueOf(data.ParseQuery),
		"NewValue":         reflect.ValueOf(data.NewValue),
		"NewNullValue":     reflect.ValueOf(data.NewNullValue),

		// constants
		"TypeNull":   reflect.ValueOf(data.TypeNull),
		"TypeString": reflect.ValueOf(data.TypeString),
		"TypeInt":    reflect.ValueOf(data.TypeInt),
		"TypeFloat":  reflect.ValueOf(data.TypeFloat),
		"TypeBool":   reflect.ValueOf(data.TypeBool),
		"TypeTime":   reflect.ValueOf(data.TypeTime),

		// errors
		"ErrInvalidSource":     reflect.ValueOf(&data.ErrInvalidSource).Elem(),
		"ErrInvalidName":       reflect.ValueOf(&data.ErrInvalidName).Elem(),
		"ErrDuplicateName":     reflect.ValueOf(&data.ErrDuplicateName).Elem(),
		"ErrLengthMismatch":    reflect.ValueOf(&data.ErrLengthMismatch).Elem(),
		"ErrNotOneDimensional": reflect.ValueOf(&data.ErrNotOneDimensional).Elem(),
		"ErrRagged":            reflect.ValueOf(&data.ErrRagged).Elem(),
		"ErrColumnNotFound":    reflect.ValueOf(&data.ErrColumnNotFound).Elem(),
		"ErrRowRange":          reflect.ValueOf(&data.ErrRowRange).Elem(),
		"ErrInvalidQuery":      reflect.ValueOf(&data.ErrInvalidQuery).Elem(),

		// types
		"Table":     reflect.ValueOf((*data.Table)(nil)),
		"Pair":      reflect.ValueOf((*data.Pair)(nil)),
		"Value":     reflect.ValueOf((*data.Value)(nil)),
		"Metadata":  reflect.ValueOf((*data.Metadata)(nil)),
		"DataType":  reflect.ValueOf((*data.DataType)(nil)),
		"CSVConfig": reflect.ValueOf((*data.CSVConfig)(nil)),
		"Query":     reflect.ValueOf((*data.Query)(nil)),
	},
}
