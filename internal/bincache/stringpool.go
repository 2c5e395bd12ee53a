package bincache

// stringRef is an offset/length pair into a StringPool.
type stringRef struct {
	Offset uint64
	Len    uint64
}

// poolBuilder interns byte strings, deduplicating equal sequences, and
// accumulates the final pool buffer in insertion order of first sight.
type poolBuilder struct {
	buf  []byte
	seen map[string]stringRef
}

func newPoolBuilder() *poolBuilder {
	return &poolBuilder{seen: make(map[string]stringRef)}
}

func (p *poolBuilder) intern(s string) stringRef {
	if ref, ok := p.seen[s]; ok {
		return ref
	}
	ref := stringRef{Offset: uint64(len(p.buf)), Len: uint64(len(s))}
	p.buf = append(p.buf, s...)
	p.seen[s] = ref
	return ref
}

func (p *poolBuilder) bytes() []byte { return p.buf }
