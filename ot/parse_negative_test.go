package ot

import "testing"

func TestParseConcreteGSUBMalformedInputs(t *testing.T) {
	t.Run("GSUB5Format3Truncated", func(t *testing.T) {
		// format=3, glyphCount=2, seqLookupCount=1 but payload truncated
		b := make([]byte, 10)
		putU16(b, 0, 3)
		putU16(b, 2, 2)
		putU16(b, 4, 1)
		putU16(b, 6, 8)
		putU16(b, 8, 0)
		node := parseConcreteLookupNode(b, GSubLookupTypeContext)
		if node == nil || node.Error() == nil {
			t.Fatalf("expected parse error for truncated GSUB5/3")
		}
	})

	t.Run("GSUB6Format3Truncated", func(t *testing.T) {
		// format=3 with backtrack/input/lookahead counts but missing lookup records.
		b := make([]byte, 12)
		putU16(b, 0, 3)
		putU16(b, 2, 1) // backtrack count
		putU16(b, 4, 10)
		putU16(b, 6, 1) // input count
		putU16(b, 8, 10)
		putU16(b, 10, 0) // lookahead count; missing seqLookupCount and records
		node := parseConcreteLookupNode(b, GSubLookupTypeChainingContext)
		if node == nil || node.Error() == nil {
			t.Fatalf("expected parse error for truncated GSUB6/3")
		}
	})

	t.Run("GSUB7RecursiveExtension", func(t *testing.T) {
		// extension format1 recursively pointing to extension type
		b := make([]byte, 8)
		putU16(b, 0, 1)
		putU16(b, 2, uint16(GSubLookupTypeExtensionSubs))
		putU32(b, 4, 4)
		node := parseConcreteLookupNode(b, GSubLookupTypeExtensionSubs)
		if node == nil || node.Error() == nil {
			t.Fatalf("expected parse error for recursive GSUB extension")
		}
	})
}
