package prettyprinter

import (
	"bytes"

	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/variant"
)

// --- Value Printer (output looks like the Inspect form, broken over lines) ---

// ValuePrinter renders runtime values. A container that does not fit in
// the remaining width is broken one element per line.
type ValuePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewValuePrinter() *ValuePrinter {
	return &ValuePrinter{indent: 0, lineWidth: 100, column: 0}
}

func NewValuePrinterWithWidth(width int) *ValuePrinter {
	return &ValuePrinter{indent: 0, lineWidth: width, column: 0}
}

func (p *ValuePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

func (p *ValuePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *ValuePrinter) write(s string) {
	p.buf.WriteString(s)
	p.column += len(s)
}

func (p *ValuePrinter) newline() {
	p.buf.WriteByte('\n')
	p.writeIndent()
}

func (p *ValuePrinter) fits(s string) bool {
	return p.lineWidth <= 0 || p.column+len(s) <= p.lineWidth
}

// Print renders obj and resets the printer.
func (p *ValuePrinter) Print(obj object.Object) string {
	p.buf.Reset()
	p.indent, p.column = 0, 0
	p.print(obj)
	return p.String()
}

func (p *ValuePrinter) String() string {
	return p.buf.String()
}

func (p *ValuePrinter) print(obj object.Object) {
	flat := obj.Inspect()
	if p.fits(flat) {
		p.write(flat)
		return
	}

	switch o := obj.(type) {
	case variant.Variant:
		if o.ValuelessByException() {
			p.write(flat)
			return
		}
		payload, err := o.Get(o.Index())
		if err != nil {
			p.write(flat)
			return
		}
		p.print(payload)
	case *object.List:
		p.printSeq("[", "]", o.ToSlice())
	case *object.Array:
		p.printSeq("{", "}", o.ToSlice())
	case *object.Map:
		items := o.Items()
		if len(items) == 0 {
			p.write(flat)
			return
		}
		p.write("{")
		p.indent++
		for i, e := range items {
			p.newline()
			p.write(e.Key.Inspect() + ": ")
			p.print(e.Value)
			if i < len(items)-1 {
				p.write(",")
			}
		}
		p.indent--
		p.newline()
		p.write("}")
	default:
		p.write(flat)
	}
}

func (p *ValuePrinter) printSeq(open, close string, elems []object.Object) {
	if len(elems) == 0 {
		p.write(open + close)
		return
	}
	p.write(open)
	p.indent++
	for i, el := range elems {
		p.newline()
		p.print(el)
		if i < len(elems)-1 {
			p.write(",")
		}
	}
	p.indent--
	p.newline()
	p.write(close)
}
