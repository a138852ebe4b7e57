package debugui

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

type FieldInfo struct {
	Name      string
	Index     int
	Type      reflect.Type
	IsPointer bool
	IsStruct  bool
}

// FieldCache remembers the exported fields of struct types.
type FieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewFieldCache() *FieldCache {
	return &FieldCache{fields: make(map[reflect.Type][]FieldInfo)}
}

func (fc *FieldCache) Fields(t reflect.Type) []FieldInfo {
	fc.mu.RLock()
	cached, ok := fc.fields[t]
	fc.mu.RUnlock()
	if ok {
		return cached
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if cached, ok := fc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			ft := field.Type
			isPointer := ft.Kind() == reflect.Ptr
			if isPointer {
				ft = ft.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Index:     i,
				Type:      ft,
				IsPointer: isPointer,
				IsStruct:  ft.Kind() == reflect.Struct && !isLeaf(ft),
			})
		}
	}

	fc.fields[t] = fields
	return fields
}

var globalFieldCache = NewFieldCache()

var (
	stringerType = reflect.TypeFor[fmt.Stringer]()
	timeType     = reflect.TypeFor[time.Time]()
)

// isLeaf reports whether values of t print as a single line.
func isLeaf(t reflect.Type) bool {
	return t == timeType || t.Implements(stringerType)
}

// FormatValue renders a field value on one line.
func FormatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "<invalid>"
	}
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return "nil"
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if !isLeaf(v.Type()) {
			return fmt.Sprintf("[%d items]", v.Len())
		}
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", v.Len())
	}

	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case time.Time:
			return x.Format("15:04:05.000")
		case fmt.Stringer:
			return x.String()
		}
		return fmt.Sprintf("%v", v.Interface())
	}
	return v.String()
}
