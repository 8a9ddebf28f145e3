// Package assembler drives the translation pipeline: it owns the shared
// stores, dispatches each tokenized line to the matching handler, and
// collects emitted bytes into the output image.
package assembler

import (
	"github.com/retroenv/retrogolib/log"

	"github.com/gbztools/gbzasm/pkg/image"
	"github.com/gbztools/gbzasm/pkg/ip"
	"github.com/gbztools/gbzasm/pkg/mnemonic"
	"github.com/gbztools/gbzasm/pkg/section"
	"github.com/gbztools/gbzasm/pkg/symtab"
)

// Context bundles the state one translation unit mutates: the symbol and
// label environments, declared sections, the instruction pointer, the
// output image, and the pending forward-reference fixups.
type Context struct {
	Symbols  *symtab.SymbolStore
	Labels   *symtab.LabelStore
	Sections *section.Store
	IP       *ip.Pointer
	Image    *image.Image
	Log      *log.Logger

	fixups []fixup
}

// fixup records an instruction emitted with a zero immediate because it
// referenced a name not yet defined, and where its bytes landed.
type fixup struct {
	m       *mnemonic.Mnemonic
	segment int
	offset  int
}

// NewContext returns a fresh Context. A nil logger falls back to the
// default logger.
func NewContext(logger *log.Logger) *Context {
	if logger == nil {
		logger = log.New()
	}
	return &Context{
		Symbols:  symtab.NewSymbolStore(),
		Labels:   symtab.NewLabelStore(),
		Sections: section.NewStore(),
		IP:       ip.New(),
		Image:    image.New(),
		Log:      logger.Named("gbzasm"),
	}
}

// FindLabel implements mnemonic.Env.
func (c *Context) FindLabel(name string) (symtab.Label, bool) {
	return c.Labels.Find(name)
}

// FindSymbol implements mnemonic.Env.
func (c *Context) FindSymbol(name string) (symtab.Symbol, bool) {
	return c.Symbols.Find(name)
}

// Reset clears every store for the next translation unit.
func (c *Context) Reset() {
	c.Symbols.Clear()
	c.Labels.Clear()
	c.Sections.Clear()
	c.IP = ip.New()
	c.Image.Reset()
	c.fixups = nil
}
