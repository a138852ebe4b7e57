package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Inspect draws a read-only tree of v's exported fields.
func Inspect(label string, v any) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", label))
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct || isLeaf(val.Type()) {
		imgui.Text(fmt.Sprintf("%s: %s", label, FormatValue(val)))
		return
	}

	if imgui.TreeNodeStr(label) {
		inspectFields(val)
		imgui.TreePop()
	}
}

func inspectFields(val reflect.Value) {
	for _, field := range globalFieldCache.Fields(val.Type()) {
		fv := val.Field(field.Index)
		if field.IsPointer && !fv.IsNil() {
			fv = fv.Elem()
		}

		if field.IsStruct && fv.Kind() == reflect.Struct {
			if imgui.TreeNodeStr(field.Name) {
				inspectFields(fv)
				imgui.TreePop()
			}
			continue
		}
		imgui.Text(fmt.Sprintf("%s: %s", field.Name, FormatValue(fv)))
	}
}
