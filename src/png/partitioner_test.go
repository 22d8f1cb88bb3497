package png

import (
	"bytes"
	"testing"
)

func makeRawRows(height, stride int) []byte {
	rows := make([]byte, height*stride)
	for i := range rows {
		rows[i] = byte(i % 251)
	}
	return rows
}

func TestPartitionerGroupsAtChunkSize(t *testing.T) {
	h := NewHeader(64, 64)
	h.SetColor(ColorRGB, 8)
	stride := h.Stride()

	// Pick a chunk size smaller than one row's filtered bytes so every row
	// closes its own group.
	p := newPartitioner(h, 1, FilterStrategyNone)

	rows := makeRawRows(int(h.Height), stride)
	var groups int
	for off := 0; off+stride <= len(rows); off += stride {
		if _, ok := p.addRow(rows[off : off+stride]); ok {
			groups++
		}
	}
	if g, ok := p.flush(); ok {
		groups++
		_ = g
	}

	if groups != int(h.Height) {
		t.Fatalf("groups = %d, want %d (one per row at chunk size 1)", groups, h.Height)
	}
}

func TestPartitionerIndexesAreSequential(t *testing.T) {
	h := NewHeader(32, 32)
	h.SetColor(ColorRGB, 8)
	stride := h.Stride()

	p := newPartitioner(h, 1, FilterStrategyNone)
	rows := makeRawRows(int(h.Height), stride)

	var lastIndex uint64
	var sawAny bool
	for off := 0; off+stride <= len(rows); off += stride {
		g, ok := p.addRow(rows[off : off+stride])
		if !ok {
			continue
		}
		if sawAny && g.Index != lastIndex+1 {
			t.Fatalf("group index = %d, want %d", g.Index, lastIndex+1)
		}
		lastIndex = g.Index
		sawAny = true
	}
	if !sawAny {
		t.Fatal("expected at least one group")
	}
}

func TestPartitionerFlushEmptyWhenOnBoundary(t *testing.T) {
	h := NewHeader(4, 1)
	h.SetColor(ColorRGB, 8)
	stride := h.Stride()

	p := newPartitioner(h, 1, FilterStrategyNone)
	rows := makeRawRows(1, stride)

	_, ok := p.addRow(rows)
	if !ok {
		t.Fatal("expected a group to close at chunk size 1")
	}

	if _, ok := p.flush(); ok {
		t.Fatal("flush() after an exact boundary should report nothing pending")
	}
}

func TestPartitionerFlushReturnsPartialGroup(t *testing.T) {
	h := NewHeader(4, 3)
	h.SetColor(ColorRGB, 8)
	stride := h.Stride()

	// chunkSize big enough that no row closes a group on its own.
	p := newPartitioner(h, 1<<20, FilterStrategyNone)
	rows := makeRawRows(3, stride)

	for off := 0; off+stride <= len(rows); off += stride {
		if _, ok := p.addRow(rows[off : off+stride]); ok {
			t.Fatal("did not expect a group to close before flush")
		}
	}

	g, ok := p.flush()
	if !ok {
		t.Fatal("flush() should return the pending partial group")
	}
	if g.RowCount != 3 {
		t.Fatalf("flush().RowCount = %d, want 3", g.RowCount)
	}
}

func TestPartitionerDictionaryCarriesForward(t *testing.T) {
	h := NewHeader(64, 8)
	h.SetColor(ColorRGB, 8)
	stride := h.Stride()

	p := newPartitioner(h, 1, FilterStrategyNone)
	rows := makeRawRows(8, stride)

	var groups []bool
	var firstPriorNil, secondPriorNonEmpty bool
	i := 0
	for off := 0; off+stride <= len(rows); off += stride {
		g, ok := p.addRow(rows[off : off+stride])
		if ok {
			if i == 0 {
				firstPriorNil = g.PriorDictionary == nil
			}
			if i == 1 {
				secondPriorNonEmpty = len(g.PriorDictionary) > 0
			}
			groups = append(groups, ok)
			i++
		}
	}

	if !firstPriorNil {
		t.Error("first group's PriorDictionary should be nil")
	}
	if !secondPriorNonEmpty {
		t.Error("second group's PriorDictionary should carry the first group's tail")
	}
}

func TestPartitionerIndexedForcesNoneUnderAdaptive(t *testing.T) {
	h := NewHeader(8, 2)
	h.SetColor(ColorIndexed, 8)
	stride := h.Stride()

	for _, strategy := range []FilterStrategy{FilterStrategyAdaptive, FilterStrategyAdaptiveFast} {
		p := newPartitioner(h, 1, strategy)
		rows := makeRawRows(2, stride)

		for off := 0; off+stride <= len(rows); off += stride {
			g, ok := p.addRow(rows[off : off+stride])
			if !ok {
				continue
			}
			if g.FilteredBytes[0] != byte(FilterNone) {
				t.Fatalf("strategy %v: indexed row filter byte = %d, want FilterNone", strategy, g.FilteredBytes[0])
			}
		}
	}
}

func TestPartitionerExplicitFilterNotOverriddenForIndexed(t *testing.T) {
	h := NewHeader(8, 1)
	h.SetColor(ColorIndexed, 8)
	stride := h.Stride()

	p := newPartitioner(h, 1, FilterStrategySub)
	rows := makeRawRows(1, stride)

	g, ok := p.addRow(rows)
	if !ok {
		t.Fatal("expected a group to close at chunk size 1")
	}
	if g.FilteredBytes[0] != byte(FilterSub) {
		t.Fatalf("explicit FilterStrategySub on indexed color was overridden: filter byte = %d, want FilterSub", g.FilteredBytes[0])
	}
}

func TestPartitionerDictionaryTailCappedAt32KiB(t *testing.T) {
	h := NewHeader(1, 1)
	h.SetColor(ColorRGB, 8)

	big := bytes.Repeat([]byte{0xAB}, maxDictionary*2)
	tail := dictionaryTail(big)
	if len(tail) != maxDictionary {
		t.Fatalf("dictionaryTail length = %d, want %d", len(tail), maxDictionary)
	}
	if !bytes.Equal(tail, big[len(big)-maxDictionary:]) {
		t.Fatal("dictionaryTail should be the trailing maxDictionary bytes")
	}

	small := bytes.Repeat([]byte{0xCD}, 10)
	tail = dictionaryTail(small)
	if len(tail) != 10 || !bytes.Equal(tail, small) {
		t.Fatal("dictionaryTail of short input should return it unchanged")
	}
}
