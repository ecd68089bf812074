// Package asttext renders dst type expressions back into Go source text.
package asttext

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// FieldTypes renders a field list into one type string per declared name.
// A field like "a, b int" contributes the type twice; an unnamed field
// contributes it once.
func FieldTypes(fields []*dst.Field, render func(dst.Expr) string) []string {
	var parts []string

	for _, field := range fields {
		typeStr := render(field.Type)

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// Type renders a type expression as Go source text. decorator.Restorer only
// prints whole files, so expressions are rebuilt by hand here.
//
//nolint:cyclop // Dispatcher over every dst type expression; the fan-out is the point.
func Type(expr dst.Expr) string {
	switch typed := expr.(type) {
	case nil:
		return ""
	case *dst.Ident:
		return typed.Name
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		return Type(typed.X) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + Type(typed.X)
	case *dst.Ellipsis:
		return "..." + Type(typed.Elt)
	case *dst.ParenExpr:
		return "(" + Type(typed.X) + ")"
	case *dst.ArrayType:
		if typed.Len != nil {
			return "[" + Type(typed.Len) + "]" + Type(typed.Elt)
		}

		return "[]" + Type(typed.Elt)
	case *dst.MapType:
		return "map[" + Type(typed.Key) + "]" + Type(typed.Value)
	case *dst.ChanType:
		return chanText(typed)
	case *dst.FuncType:
		return "func" + funcTail(typed, Type)
	case *dst.InterfaceType:
		return interfaceText(typed)
	case *dst.StructType:
		return structText(typed)
	case *dst.IndexExpr:
		return Type(typed.X) + "[" + Type(typed.Index) + "]"
	case *dst.IndexListExpr:
		return indexListText(typed)
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// chanText renders a channel type with its direction arrow.
func chanText(ch *dst.ChanType) string {
	switch ch.Dir {
	case dst.SEND:
		return "chan<- " + Type(ch.Value)
	case dst.RECV:
		return "<-chan " + Type(ch.Value)
	default:
		return "chan " + Type(ch.Value)
	}
}

// funcTail renders the "(params) results" part of a func type, without the
// leading "func" keyword, so interface method entries can reuse it.
func funcTail(funcType *dst.FuncType, render func(dst.Expr) string) string {
	var buf strings.Builder

	buf.WriteString("(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(FieldTypes(funcType.Params.List, render), ", "))
	}

	buf.WriteString(")")

	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return buf.String()
	}

	results := FieldTypes(funcType.Results.List, render)

	buf.WriteString(" ")

	if len(results) > 1 {
		buf.WriteString("(" + strings.Join(results, ", ") + ")")
	} else {
		buf.WriteString(results[0])
	}

	return buf.String()
}

// indexListText renders a generic instantiation with several type arguments.
func indexListText(idx *dst.IndexListExpr) string {
	args := make([]string, len(idx.Indices))
	for i, arg := range idx.Indices {
		args[i] = Type(arg)
	}

	return Type(idx.X) + "[" + strings.Join(args, ", ") + "]"
}

// interfaceText renders an interface literal inline, joining entries with
// semicolons. Embedded interfaces render as their bare type.
func interfaceText(iface *dst.InterfaceType) string {
	if iface.Methods == nil || len(iface.Methods.List) == 0 {
		return "interface{}"
	}

	entries := make([]string, 0, len(iface.Methods.List))

	for _, method := range iface.Methods.List {
		funcType, isMethod := method.Type.(*dst.FuncType)
		if !isMethod || len(method.Names) == 0 {
			entries = append(entries, Type(method.Type))

			continue
		}

		for _, name := range method.Names {
			entries = append(entries, name.Name+funcTail(funcType, Type))
		}
	}

	return "interface{ " + strings.Join(entries, "; ") + " }"
}

// structText renders a struct literal inline, keeping field names and tags.
func structText(structType *dst.StructType) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var entry strings.Builder

		if len(field.Names) > 0 {
			names := make([]string, len(field.Names))
			for i, name := range field.Names {
				names[i] = name.Name
			}

			entry.WriteString(strings.Join(names, ", "))
			entry.WriteString(" ")
		}

		entry.WriteString(Type(field.Type))

		if field.Tag != nil {
			entry.WriteString(" ")
			entry.WriteString(field.Tag.Value)
		}

		fields = append(fields, entry.String())
	}

	return "struct{ " + strings.Join(fields, "; ") + " }"
}
