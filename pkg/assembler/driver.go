package assembler

import (
	"errors"
	"fmt"

	"github.com/gbztools/gbzasm/internal/source"
	"github.com/gbztools/gbzasm/pkg/directive"
	"github.com/gbztools/gbzasm/pkg/mnemonic"
	"github.com/gbztools/gbzasm/pkg/token"
	"github.com/retroenv/retrogolib/log"
)

// ErrReservedDirective marks a directive that tokenizes but is not
// executed: the macro system, includes, and the other reserved keywords.
var ErrReservedDirective = errors.New("reserved directive")

// ErrUnresolvedReference marks a name still undefined after the whole
// translation unit has been read.
var ErrUnresolvedReference = errors.New("unresolved reference")

// Driver assembles a translation unit line by line into its Context.
type Driver struct {
	ctx       *Context
	tokenizer *token.Tokenizer
}

// NewDriver returns a Driver emitting into ctx.
func NewDriver(ctx *Context) *Driver {
	return &Driver{ctx: ctx, tokenizer: token.NewTokenizer()}
}

// Context returns the driver's assembly state.
func (d *Driver) Context() *Context { return d.ctx }

// Assemble reads every logical line from reader, assembles it, and
// resolves forward references at end of input.
func (d *Driver) Assemble(reader source.Reader) error {
	lineNo := 0
	for {
		line, ok := reader.ReadLine()
		if !ok {
			break
		}
		lineNo++
		if err := d.AssembleLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return d.ResolveFixups()
}

// AssembleLine tokenizes and dispatches one logical source line. A line
// may hold several constructs ("start: LD A, $10"); each handler reports
// how many tokens it consumed and the driver dispatches the remainder.
func (d *Driver) AssembleLine(line string) error {
	group := d.tokenizer.Tokenize(line)
	for len(group) > 0 {
		consumed, err := d.dispatch(group)
		if err != nil {
			return err
		}
		group = group[consumed:]
	}
	return nil
}

func (d *Driver) dispatch(group token.Group) (int, error) {
	first := group[0]
	switch first.Kind {
	case token.KindDirective:
		return d.dispatchDirective(group)

	case token.KindStorageDirective:
		data, consumed, err := directive.Storage(group)
		if err != nil {
			return 0, err
		}
		d.emit(data)
		d.ctx.Log.Debug("storage emitted",
			log.String("directive", first.Value), log.Int("bytes", len(data)), log.Uint16("address", d.ctx.IP.Current()))
		if err := d.ctx.IP.Advance(len(data)); err != nil {
			return 0, err
		}
		return consumed, nil

	case token.KindInstruction:
		m, err := mnemonic.Resolve(group, d.ctx)
		if err != nil {
			return 0, err
		}
		d.emit(m.Code)
		seg, end := d.ctx.Image.LastOffset()
		if m.Unresolved {
			d.ctx.fixups = append(d.ctx.fixups, fixup{m: m, segment: seg, offset: end - len(m.Code)})
			d.ctx.Log.Warn("forward reference deferred",
				log.String("mnemonic", m.Entry.Mnemonic), log.Uint16("address", d.ctx.IP.Current()))
		}
		d.ctx.Log.Debug("instruction emitted",
			log.String("mnemonic", m.Entry.Mnemonic), log.Uint16("opcode", m.Entry.Opcode), log.Uint16("address", d.ctx.IP.Current()))
		if err := d.ctx.IP.Advance(len(m.Code)); err != nil {
			return 0, err
		}
		return m.Consumed(), nil

	case token.KindSymbol:
		sym := *first.Sym
		sym.Address = d.ctx.IP.Current()
		d.ctx.Symbols.Push(sym, true)
		d.ctx.Log.Debug("symbol registered", log.String("name", sym.Clean), log.Uint16("address", sym.Address))
		return 1, nil

	case token.KindInvalid:
		if first.Err != nil {
			return 0, fmt.Errorf("assembler: invalid token %q: %w", first.Value, first.Err)
		}
		return 0, fmt.Errorf("assembler: invalid token %q", first.Value)

	default:
		return 1, nil
	}
}

func (d *Driver) dispatchDirective(group token.Group) (int, error) {
	switch group[0].Value {
	case "DEF":
		return directive.Define(group, d.ctx.Labels)
	case "SECTION":
		sec, consumed, err := directive.Section(group)
		if err != nil {
			return 0, err
		}
		d.ctx.Sections.Push(sec)
		base := uint16(sec.Address & 0xFFFF)
		d.ctx.IP.SetBaseAddress(base)
		d.ctx.Image.NewSegment(base)
		d.ctx.Log.Debug("section opened", log.String("name", sec.Name), log.Uint16("base", base))
		return consumed, nil
	default:
		return 0, fmt.Errorf("assembler: %w: %s", ErrReservedDirective, group[0].Value)
	}
}

// emit appends data to the image's current segment, starting one at the
// instruction pointer if no section has been opened yet.
func (d *Driver) emit(data []byte) {
	d.ctx.Image.Append(d.ctx.IP.Current(), data)
}

// ResolveFixups re-resolves every deferred instruction and patches its
// immediate bytes in place. A name still undefined is an error.
func (d *Driver) ResolveFixups() error {
	for _, f := range d.ctx.fixups {
		if err := f.m.ResolveAgain(d.ctx); err != nil {
			return err
		}
		if f.m.Unresolved {
			return fmt.Errorf("assembler: %w: %s %s %s",
				ErrUnresolvedReference, f.m.Entry.Mnemonic, f.m.Operand1, f.m.Operand2)
		}
		if !d.ctx.Image.Patch(f.segment, f.offset, f.m.Code) {
			return fmt.Errorf("assembler: fixup patch failed at segment %d offset %d", f.segment, f.offset)
		}
	}
	d.ctx.fixups = nil
	return nil
}
