package wasm

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wippyai/wasm-probe/internal/binary"
)

// PayloadKind identifies what a Payload carries.
type PayloadKind int

const (
	// PayloadVersion is emitted once for the module header.
	PayloadVersion PayloadKind = iota
	// PayloadSection is emitted for every section, in file order. For code
	// sections it is followed by one PayloadCodeEntry per function body.
	PayloadSection
	// PayloadCodeEntry carries a single function body.
	PayloadCodeEntry
)

// Payload is one structural unit of a module, yielded in on-disk order.
type Payload struct {
	// Data holds the section contents (without id and size) for sections,
	// or the instruction bytes of a function body for code entries.
	Data []byte
	// Locals holds the raw local declarations of a code entry.
	Locals []byte
	// Name is set for custom sections.
	Name string
	Kind PayloadKind
	// Offset is the absolute position of Data within the module.
	Offset int
	// Count is the entry count for vector sections; for code entries it is
	// the number of declared locals.
	Count uint32
	// Version is set for PayloadVersion.
	Version uint32
	// Index is the position of a code entry within the code section.
	Index uint32
	ID    byte
}

// counted reports whether a section's contents start with an entry count.
func counted(id byte) bool {
	switch id {
	case SectionType, SectionImport, SectionFunction, SectionTable, SectionMemory,
		SectionGlobal, SectionExport, SectionElement, SectionCode, SectionData, SectionTag:
		return true
	}
	return false
}

// Instructions returns a lazy reader over a code entry's instructions.
func (p Payload) Instructions() *InstructionReader {
	return NewInstructionReader(p.Data, p.Offset)
}

// Parser walks a module's payloads without building a full module model.
type Parser struct {
	r        *binary.Reader
	err      error
	code     *binary.Reader
	codeBase int
	lastID   int
	codeLeft uint32
	codeIdx  uint32
	started  bool
}

// NewParser creates a parser over a complete module binary.
func NewParser(data []byte) *Parser {
	return &Parser{r: binary.NewReader(data)}
}

// Next returns the next payload, or io.EOF once the module is exhausted.
// After an error every further call returns the same error.
func (p *Parser) Next() (Payload, error) {
	if p.err != nil {
		return Payload{}, p.err
	}
	pl, err := p.next()
	if err != nil && !errors.Is(err, io.EOF) {
		p.err = err
	}
	return pl, err
}

func (p *Parser) next() (Payload, error) {
	if !p.started {
		p.started = true
		return p.readHeader()
	}
	if p.code != nil {
		return p.readCodeEntry()
	}
	if p.r.EOF() {
		return Payload{}, io.EOF
	}
	return p.readSection()
}

func (p *Parser) readHeader() (Payload, error) {
	magic, err := p.r.ReadU32LE()
	if err != nil {
		return Payload{}, p.r.WrapError("header", 0, err)
	}
	if magic != Magic {
		return Payload{}, p.r.WrapError("header", 0, fmt.Errorf("invalid magic number 0x%08x", magic))
	}
	version, err := p.r.ReadU32LE()
	if err != nil {
		return Payload{}, p.r.WrapError("header", 0, err)
	}
	if version != Version {
		return Payload{}, p.r.WrapError("header", 0, fmt.Errorf("unsupported version %d", version))
	}
	return Payload{Kind: PayloadVersion, Version: version}, nil
}

func (p *Parser) readSection() (Payload, error) {
	id, err := p.r.ReadByte()
	if err != nil {
		return Payload{}, p.r.WrapError("section", 0, err)
	}
	size, err := p.r.ReadU32()
	if err != nil {
		return Payload{}, p.r.WrapError("section", 0, err)
	}
	offset := p.r.Position()
	data, err := p.r.ReadBytes(int(size))
	if err != nil {
		return Payload{}, p.r.WrapError(SectionName(id), 0, err)
	}

	pl := Payload{Kind: PayloadSection, ID: id, Data: data, Offset: offset}
	if id == SectionCustom {
		sr := binary.NewReader(data)
		if pl.Name, err = sr.ReadName(); err != nil {
			return Payload{}, sr.WrapError("custom", offset, err)
		}
		return pl, nil
	}

	order := SectionOrder(id)
	if order < 0 {
		return Payload{}, p.r.WrapError("section", 0, fmt.Errorf("unknown section id %d", id))
	}
	if order <= p.lastID {
		return Payload{}, p.r.WrapError(SectionName(id), 0, errors.New("section out of order"))
	}
	p.lastID = order

	if counted(id) {
		sr := binary.NewReader(data)
		if pl.Count, err = sr.ReadU32(); err != nil {
			return Payload{}, sr.WrapError(SectionName(id), offset, err)
		}
		if id == SectionCode {
			p.code = sr
			p.codeBase = offset
			p.codeLeft = pl.Count
			p.codeIdx = 0
		}
	}
	return pl, nil
}

func (p *Parser) readCodeEntry() (Payload, error) {
	cr := p.code
	if p.codeLeft == 0 {
		p.code = nil
		if !cr.EOF() {
			return Payload{}, cr.WrapError("code", p.codeBase, errors.New("section size mismatch"))
		}
		return p.next()
	}

	size, err := cr.ReadU32()
	if err != nil {
		return Payload{}, cr.WrapError("code", p.codeBase, err)
	}
	bodyStart := cr.Position()
	body, err := cr.ReadBytes(int(size))
	if err != nil {
		return Payload{}, cr.WrapError("code", p.codeBase, err)
	}

	br := binary.NewReader(body)
	groups, err := br.ReadU32()
	if err != nil {
		return Payload{}, br.WrapError("code", p.codeBase+bodyStart, err)
	}
	var locals uint64
	for i := uint32(0); i < groups; i++ {
		n, err := br.ReadU32()
		if err != nil {
			return Payload{}, br.WrapError("code", p.codeBase+bodyStart, err)
		}
		if err := skipValType(br); err != nil {
			return Payload{}, br.WrapError("code", p.codeBase+bodyStart, err)
		}
		locals += uint64(n)
		if locals > math.MaxUint32 {
			return Payload{}, br.WrapError("code", p.codeBase+bodyStart, errors.New("too many locals"))
		}
	}

	localsEnd := br.Position()
	pl := Payload{
		Kind:   PayloadCodeEntry,
		ID:     SectionCode,
		Index:  p.codeIdx,
		Count:  uint32(locals),
		Locals: body[:localsEnd],
		Data:   body[localsEnd:],
		Offset: p.codeBase + bodyStart + localsEnd,
	}
	p.codeLeft--
	p.codeIdx++
	return pl, nil
}

// Walk calls fn for every payload in order, stopping at the first error.
func Walk(data []byte, fn func(Payload) error) error {
	p := NewParser(data)
	for {
		pl, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(pl); err != nil {
			return err
		}
	}
}

func skipValType(r *binary.Reader) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}
	switch ValType(b) {
	case ValI32, ValI64, ValF32, ValF64, ValV128, ValFuncRef, ValExtern:
		return nil
	case ValRef, ValRefNull:
		_, err := r.ReadS33()
		return err
	}
	return fmt.Errorf("invalid value type 0x%02x", b)
}

func skipLimits(r *binary.Reader) error {
	flags, err := r.ReadByte()
	if err != nil {
		return err
	}
	if flags&^(limitsHasMax|limitsShared|limitsMemory64) != 0 {
		return fmt.Errorf("invalid limits flags 0x%02x", flags)
	}
	read := func() error {
		if flags&limitsMemory64 != 0 {
			_, err := r.ReadU64()
			return err
		}
		_, err := r.ReadU32()
		return err
	}
	if err := read(); err != nil {
		return err
	}
	if flags&limitsHasMax != 0 {
		return read()
	}
	return nil
}
