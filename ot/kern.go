package ot

// KernTable stores legacy pairwise kerning data ('kern'). Icon glyphs are
// never shaped as text runs (see GPOS removal, DESIGN.md), so this package
// keeps only enough of 'kern' to let parseKern run to completion without
// decoding kerning pairs themselves.
type KernTable struct {
	tableBase
	headers []kernSubTableHeader
}

func newKernTable(tag Tag, b binarySegm, offset, size uint32) *KernTable {
	t := &KernTable{}
	t.tableBase = tableBase{data: b, name: tag, offset: offset, length: size}
	t.self = t
	return t
}
