package core

import (
	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the compiled snapshot file format. The shapes here are
// small and stable, so the codecs are maintained by hand rather than
// generated.

var (
	// FingerprintMUS serializes Fingerprint values.
	FingerprintMUS = fingerprintMUS{}

	// DocumentMUS serializes Document values.
	DocumentMUS = documentMUS{}

	// RuleRecordMUS serializes RuleRecord values.
	RuleRecordMUS = ruleRecordMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	tagsMUS        = ord.NewMapSer[string, []string](ord.String, stringSliceMUS)
)

var (
	_ mus.Serializer[Fingerprint] = FingerprintMUS
	_ mus.Serializer[Document]    = DocumentMUS
	_ mus.Serializer[RuleRecord]  = RuleRecordMUS
)

type fingerprintMUS struct{}

func (fingerprintMUS) Marshal(f Fingerprint, bs []byte) int {
	return varint.Uint64.Marshal(uint64(f), bs)
}

func (fingerprintMUS) Unmarshal(bs []byte) (Fingerprint, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return Fingerprint(v), n, err
}

func (fingerprintMUS) Size(f Fingerprint) int {
	return varint.Uint64.Size(uint64(f))
}

func (fingerprintMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = ord.String.Marshal(d.Name, bs)
	n += ord.String.Marshal(d.Text, bs[n:])
	n += ord.String.Marshal(d.Jurisdiction, bs[n:])
	n += varint.Int.Marshal(d.Precedence, bs[n:])
	n += ord.String.Marshal(d.PrecedenceName, bs[n:])
	n += FingerprintMUS.Marshal(d.Fingerprint, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var n1 int
	if d.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if d.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Jurisdiction, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Precedence, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.PrecedenceName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.Fingerprint, n1, err = FingerprintMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (documentMUS) Size(d Document) (size int) {
	size = ord.String.Size(d.Name)
	size += ord.String.Size(d.Text)
	size += ord.String.Size(d.Jurisdiction)
	size += varint.Int.Size(d.Precedence)
	size += ord.String.Size(d.PrecedenceName)
	size += FingerprintMUS.Size(d.Fingerprint)
	return size
}

func (documentMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 3; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = FingerprintMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

type ruleRecordMUS struct{}

func (ruleRecordMUS) Marshal(r RuleRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.ID, bs)
	n += ord.String.Marshal(r.Content, bs[n:])
	n += ord.String.Marshal(r.Document, bs[n:])
	n += ord.String.Marshal(r.RawBlock, bs[n:])
	n += tagsMUS.Marshal(r.Tags, bs[n:])
	return n
}

func (ruleRecordMUS) Unmarshal(bs []byte) (r RuleRecord, n int, err error) {
	var n1 int
	if r.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if r.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Document, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.RawBlock, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Tags, n1, err = tagsMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if len(r.Tags) == 0 {
		r.Tags = nil
	}
	return
}

func (ruleRecordMUS) Size(r RuleRecord) (size int) {
	size = ord.String.Size(r.ID)
	size += ord.String.Size(r.Content)
	size += ord.String.Size(r.Document)
	size += ord.String.Size(r.RawBlock)
	size += tagsMUS.Size(r.Tags)
	return size
}

func (ruleRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 4; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if n1, err = tagsMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}
