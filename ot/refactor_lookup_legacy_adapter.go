package ot

// legacyLookupSubtableFromConcrete projects a concrete lookup node onto the
// transitional legacy LookupSubtable model.
//
// This adapter is intentionally internal and transitional. It allows legacy
// API surfaces to be kept stable while concrete lookup parsing becomes the
// single source of truth.
func legacyLookupSubtableFromConcrete(node *LookupNode) LookupSubtable {
	if node == nil {
		return LookupSubtable{}
	}
	// Legacy model exposes extension subtables as the wrapped effective type.
	if p := node.GSubPayload(); p != nil && p.ExtensionFmt1 != nil && p.ExtensionFmt1.Resolved != nil {
		return legacyLookupSubtableFromConcrete(p.ExtensionFmt1.Resolved)
	}
	sub := LookupSubtable{
		LookupType: node.LookupType,
		Format:     node.Format,
		Coverage:   node.Coverage,
	}
	adaptLegacyGSubLookupSubtable(node, &sub)
	return sub
}

func adaptLegacyGSubLookupSubtable(node *LookupNode, sub *LookupSubtable) {
	if node == nil || sub == nil || node.GSubPayload() == nil {
		return
	}
	switch sub.LookupType {
	case GSubLookupTypeSingle:
		switch sub.Format {
		case 1:
			if p := node.GSubPayload().SingleFmt1; p != nil {
				sub.Support = p.DeltaGlyphID
			}
		case 2:
			sub.Index = parseVarArray16(node.raw, 4, 2, 1, "LookupSubtableGSub1")
		}
	case GSubLookupTypeMultiple, GSubLookupTypeAlternate, GSubLookupTypeLigature:
		indirections := 2
		if sub.LookupType == GSubLookupTypeMultiple || sub.LookupType == GSubLookupTypeAlternate {
			indirections = 1
		}
		sub.Index = parseVarArray16(node.raw, 4, 2, indirections, "LookupSubtableGSub2/3/4")
	case GSubLookupTypeContext:
		switch sub.Format {
		case 1:
			sub.Index = parseVarArray16(node.raw, 4, 2, 2, "LookupSubtableGSub5-1")
		case 2:
			sub.Index = parseVarArray16(node.raw, 6, 2, 2, "LookupSubtableGSub5-2")
			if p := node.GSubPayload().ContextFmt2; p != nil {
				sub.Support = &SequenceContext{
					ClassDefs: []ClassDefinitions{p.ClassDef},
				}
			}
		case 3:
			sub.Index = parseVarArray16(node.raw, 4, 4, 2, "LookupSubtableGSub5-3")
			if p := node.GSubPayload().ContextFmt3; p != nil {
				seqctx := SequenceContext{
					InputCoverage: copyCoverageSlice(p.InputCoverages),
				}
				sub.Support = seqctx // keep legacy value semantics for fmt3
			}
		}
	case GSubLookupTypeChainingContext:
		switch sub.Format {
		case 1:
			sub.Index = parseVarArray16(node.raw, 4, 2, 2, "LookupSubtableGSub6-1")
		case 2:
			sub.Index = parseVarArray16(node.raw, 10, 2, 2, "LookupSubtableGSub6-2")
			if p := node.GSubPayload().ChainingContextFmt2; p != nil {
				sub.Support = &SequenceContext{
					ClassDefs: []ClassDefinitions{
						p.BacktrackClassDef,
						p.InputClassDef,
						p.LookaheadClassDef,
					},
				}
			}
		case 3:
			if p := node.GSubPayload().ChainingContextFmt3; p != nil {
				sub.Support = &SequenceContext{
					BacktrackCoverage: copyCoverageSlice(p.BacktrackCoverages),
					InputCoverage:     copyCoverageSlice(p.InputCoverages),
					LookaheadCoverage: copyCoverageSlice(p.LookaheadCoverages),
				}
				sub.LookupRecords = copySequenceLookupRecords(p.Records)
			}
		}
	case GSubLookupTypeReverseChaining:
		if p := node.GSubPayload().ReverseChainingFmt1; p != nil {
			sub.Support = ReverseChainingSubst{
				BacktrackCoverage:  copyCoverageSlice(p.BacktrackCoverages),
				LookaheadCoverage:  copyCoverageSlice(p.LookaheadCoverages),
				SubstituteGlyphIDs: copyGlyphIndices(p.SubstituteGlyphIDs),
			}
		}
	}
}

func copySequenceLookupRecords(in []SequenceLookupRecord) []SequenceLookupRecord {
	if len(in) == 0 {
		return nil
	}
	out := make([]SequenceLookupRecord, len(in))
	copy(out, in)
	return out
}

func copyCoverageSlice(in []Coverage) []Coverage {
	if len(in) == 0 {
		return nil
	}
	out := make([]Coverage, len(in))
	copy(out, in)
	return out
}

func copyGlyphIndices(in []GlyphIndex) []GlyphIndex {
	if len(in) == 0 {
		return nil
	}
	out := make([]GlyphIndex, len(in))
	copy(out, in)
	return out
}
