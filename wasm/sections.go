package wasm

import (
	"fmt"

	"github.com/wippyai/wasm-probe/internal/binary"
)

// Import is an import entry; only names and the descriptor kind are kept.
type Import struct {
	Module string
	Name   string
	Kind   byte
}

// Export is an export entry.
type Export struct {
	Name  string
	Index uint32
	Kind  byte
}

// Imports decodes the entries of an import section payload.
func (p Payload) Imports() ([]Import, error) {
	if p.ID != SectionImport {
		return nil, fmt.Errorf("payload is a %s section, not import", SectionName(p.ID))
	}
	r := binary.NewReader(p.Data)
	count, err := r.ReadU32()
	if err != nil {
		return nil, r.WrapError("import", p.Offset, err)
	}
	imports := make([]Import, 0, min(int(count), len(p.Data)))
	for i := uint32(0); i < count; i++ {
		var imp Import
		if imp.Module, err = r.ReadName(); err != nil {
			return nil, r.WrapError("import", p.Offset, err)
		}
		if imp.Name, err = r.ReadName(); err != nil {
			return nil, r.WrapError("import", p.Offset, err)
		}
		if imp.Kind, err = r.ReadByte(); err != nil {
			return nil, r.WrapError("import", p.Offset, err)
		}
		if err := skipImportDesc(r, imp.Kind); err != nil {
			return nil, r.WrapError("import", p.Offset, err)
		}
		imports = append(imports, imp)
	}
	return imports, nil
}

func skipImportDesc(r *binary.Reader, kind byte) error {
	switch kind {
	case KindFunc:
		_, err := r.ReadU32()
		return err
	case KindTable:
		if err := skipValType(r); err != nil {
			return err
		}
		return skipLimits(r)
	case KindMemory:
		return skipLimits(r)
	case KindGlobal:
		if err := skipValType(r); err != nil {
			return err
		}
		_, err := r.ReadByte()
		return err
	case KindTag:
		if _, err := r.ReadByte(); err != nil {
			return err
		}
		_, err := r.ReadU32()
		return err
	}
	return fmt.Errorf("invalid import kind 0x%02x", kind)
}

// Exports decodes the entries of an export section payload.
func (p Payload) Exports() ([]Export, error) {
	if p.ID != SectionExport {
		return nil, fmt.Errorf("payload is a %s section, not export", SectionName(p.ID))
	}
	r := binary.NewReader(p.Data)
	count, err := r.ReadU32()
	if err != nil {
		return nil, r.WrapError("export", p.Offset, err)
	}
	exports := make([]Export, 0, min(int(count), len(p.Data)))
	for i := uint32(0); i < count; i++ {
		var exp Export
		if exp.Name, err = r.ReadName(); err != nil {
			return nil, r.WrapError("export", p.Offset, err)
		}
		if exp.Kind, err = r.ReadByte(); err != nil {
			return nil, r.WrapError("export", p.Offset, err)
		}
		if exp.Index, err = r.ReadU32(); err != nil {
			return nil, r.WrapError("export", p.Offset, err)
		}
		exports = append(exports, exp)
	}
	return exports, nil
}

// Entries returns the section contents that follow the entry count.
func (p Payload) Entries() ([]byte, error) {
	if !counted(p.ID) || p.Kind != PayloadSection {
		return nil, fmt.Errorf("%s section has no entry vector", SectionName(p.ID))
	}
	r := binary.NewReader(p.Data)
	if _, err := r.ReadU32(); err != nil {
		return nil, r.WrapError(SectionName(p.ID), p.Offset, err)
	}
	return p.Data[r.Position():], nil
}
