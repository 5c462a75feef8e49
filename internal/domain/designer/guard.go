package designer

import (
	"context"
	"reflect"
)

// ViolationMonitor receives persistence-guard violations. A violation is a
// latent data-corruption defect, so implementations should alert, not just
// count.
type ViolationMonitor interface {
	RecordPersistenceViolation(ctx context.Context, guardContext string, reasons []string)
}

// AssertNotLayout rejects any layout-shaped object before it can reach a
// save call. The check is structural on purpose: a compile-time type alone
// would not survive a refactor that wires the view model into a save path
// across a serialization boundary, while shape sniffing does. It must be run
// immediately before every repository update.
//
// An object is rejected if it carries the layout marker, if it exposes any
// of the layout area keys (header, body, lines, actions), or if it lacks the
// canonical-only header field and table column collections.
func AssertNotLayout(obj any, guardContext string) error {
	reasons := layoutShapeReasons(obj)
	if len(reasons) == 0 {
		return nil
	}
	return &PersistenceViolationError{Context: guardContext, Reasons: reasons}
}

func layoutShapeReasons(obj any) []string {
	var reasons []string

	switch v := obj.(type) {
	case nil:
		return []string{"object is nil"}
	case *VoucherLayoutV2, VoucherLayoutV2:
		return []string{"object is a VoucherLayoutV2"}
	case *VoucherTypeDefinition:
		if v == nil {
			return []string{"object is nil"}
		}
		return nil
	case VoucherTypeDefinition:
		return nil
	case map[string]any:
		return mapShapeReasons(v)
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return []string{"object is nil"}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return []string{"object is not a canonical definition"}
	}

	rt := rv.Type()
	hasHeaderFields := false
	hasTableColumns := false
	for i := 0; i < rt.NumField(); i++ {
		switch rt.Field(i).Name {
		case "Marker":
			if rv.Field(i).Kind() == reflect.String && rv.Field(i).String() == layoutMarkerValue {
				reasons = append(reasons, "object carries the layout marker")
			}
		case "Header", "Body", "Lines", "Actions":
			reasons = append(reasons, "object has layout area "+rt.Field(i).Name)
		case "HeaderFields":
			hasHeaderFields = true
		case "TableColumns":
			hasTableColumns = true
		}
	}
	if !hasHeaderFields {
		reasons = append(reasons, "object is missing headerFields")
	}
	if !hasTableColumns {
		reasons = append(reasons, "object is missing tableColumns")
	}
	return reasons
}

// mapShapeReasons handles objects that crossed a serialization boundary and
// arrive as generic maps.
func mapShapeReasons(m map[string]any) []string {
	var reasons []string
	if marker, ok := m["__layout_marker"]; ok {
		if s, ok := marker.(string); ok && s == layoutMarkerValue {
			reasons = append(reasons, "object carries the layout marker")
		}
	}
	for _, key := range []string{"header", "body", "lines", "actions"} {
		if _, ok := m[key]; ok {
			reasons = append(reasons, "object has layout area "+key)
		}
	}
	if _, ok := m["header_fields"]; !ok {
		reasons = append(reasons, "object is missing headerFields")
	}
	if _, ok := m["table_columns"]; !ok {
		reasons = append(reasons, "object is missing tableColumns")
	}
	return reasons
}
