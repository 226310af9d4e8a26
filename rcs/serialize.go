package rcs

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/grailbio/jst/coverage"
	"github.com/grailbio/jst/jsterr"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/variant"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// magic identifies the on-disk RCS store format (SPEC_FULL.md §6).
var magic = [4]byte{'J', 'S', 'T', '1'}

// hashKey is a fixed key for the highwayhash checksum. It need not be
// secret: the checksum guards against truncation and bit rot, not
// tampering.
var hashKey = make([]byte, 32)

// Write serializes the store: magic, header, raw source bytes, then a
// snappy-compressed block of (variant, coverage) records, followed by a
// highwayhash-256 checksum of everything between the magic and the
// checksum (the magic itself is not hashed).
func (s *Store) Write(w io.Writer) error {
	s.refreshOrdered()

	var body bytes.Buffer
	if err := binary.Write(&body, binary.LittleEndian, uint32(s.h)); err != nil {
		return errors.WithStack(err)
	}
	if err := binary.Write(&body, binary.LittleEndian, uint32(len(s.source))); err != nil {
		return errors.WithStack(err)
	}
	if _, err := body.Write(s.source); err != nil {
		return errors.WithStack(err)
	}

	var records bytes.Buffer
	if err := binary.Write(&records, binary.LittleEndian, uint32(len(s.ordered))); err != nil {
		return errors.WithStack(err)
	}
	for _, r := range s.ordered {
		if err := writeRecord(&records, r.key); err != nil {
			return err
		}
	}
	compressed := snappy.Encode(nil, records.Bytes())
	if err := binary.Write(&body, binary.LittleEndian, uint32(len(compressed))); err != nil {
		return errors.WithStack(err)
	}
	if _, err := body.Write(compressed); err != nil {
		return errors.WithStack(err)
	}

	h, err := highwayhash.New(hashKey)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := h.Write(body.Bytes()); err != nil {
		return errors.WithStack(err)
	}
	checksum := h.Sum(nil)

	if _, err := w.Write(magic[:]); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(checksum); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func writeRecord(w io.Writer, c variant.Covered) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(c.Position())); err != nil {
		return errors.WithStack(err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(c.Kind())); err != nil {
		return errors.WithStack(err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(c.DeletionLength())); err != nil {
		return errors.WithStack(err)
	}
	ins := c.Insertion()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ins))); err != nil {
		return errors.WithStack(err)
	}
	if _, err := w.Write(ins); err != nil {
		return errors.WithStack(err)
	}
	ids := c.Coverage().Elements()
	if err := binary.Write(w, binary.LittleEndian, uint32(c.Coverage().Domain())); err != nil {
		return errors.WithStack(err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ids))); err != nil {
		return errors.WithStack(err)
	}
	for _, id := range ids {
		if err := binary.Write(w, binary.LittleEndian, uint32(id)); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// Read deserializes a store written by Write, validating the checksum
// before any record is parsed.
func Read(r io.Reader, opts ...Opt) (*Store, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(all) < 4+len(hashKey) {
		return nil, errors.Wrap(jsterr.ErrDecode, "truncated rcs store")
	}
	if !bytes.Equal(all[:4], magic[:]) {
		return nil, errors.Wrap(jsterr.ErrDecode, "bad magic")
	}
	sumSize := highwayhash.Size
	body := all[4 : len(all)-sumSize]
	wantSum := all[len(all)-sumSize:]

	h, err := highwayhash.New(hashKey)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := h.Write(body); err != nil {
		return nil, errors.WithStack(err)
	}
	if !bytes.Equal(h.Sum(nil), wantSum) {
		return nil, errors.Wrap(jsterr.ErrDecode, "checksum mismatch")
	}

	buf := bytes.NewReader(body)
	var hcount, srcLen uint32
	if err := binary.Read(buf, binary.LittleEndian, &hcount); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &srcLen); err != nil {
		return nil, errors.WithStack(err)
	}
	source := make([]byte, srcLen)
	if _, err := io.ReadFull(buf, source); err != nil {
		return nil, errors.WithStack(err)
	}
	var compLen uint32
	if err := binary.Read(buf, binary.LittleEndian, &compLen); err != nil {
		return nil, errors.WithStack(err)
	}
	compressed := make([]byte, compLen)
	if _, err := io.ReadFull(buf, compressed); err != nil {
		return nil, errors.WithStack(err)
	}
	records, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s := New(source, int(hcount), opts...)
	rbuf := bytes.NewReader(records)
	var n uint32
	if err := binary.Read(rbuf, binary.LittleEndian, &n); err != nil {
		return nil, errors.WithStack(err)
	}
	for i := uint32(0); i < n; i++ {
		v, cov, err := readRecord(rbuf)
		if err != nil {
			return nil, err
		}
		if err := s.Add(v, cov); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func readRecord(r io.Reader) (variant.Variant, coverage.Coverage, error) {
	var pos, delLen, insLen uint32
	if err := binary.Read(r, binary.LittleEndian, &pos); err != nil {
		return variant.Variant{}, nil, errors.WithStack(err)
	}
	var kindByte uint8
	if err := binary.Read(r, binary.LittleEndian, &kindByte); err != nil {
		return variant.Variant{}, nil, errors.WithStack(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &delLen); err != nil {
		return variant.Variant{}, nil, errors.WithStack(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &insLen); err != nil {
		return variant.Variant{}, nil, errors.WithStack(err)
	}
	ins := make([]byte, insLen)
	if _, err := io.ReadFull(r, ins); err != nil {
		return variant.Variant{}, nil, errors.WithStack(err)
	}
	var domain, covLen uint32
	if err := binary.Read(r, binary.LittleEndian, &domain); err != nil {
		return variant.Variant{}, nil, errors.WithStack(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &covLen); err != nil {
		return variant.Variant{}, nil, errors.WithStack(err)
	}
	cov := coverage.Empty(int(domain))
	for i := uint32(0); i < covLen; i++ {
		var id uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return variant.Variant{}, nil, errors.WithStack(err)
		}
		cov.Insert(int(id))
	}

	var v variant.Variant
	if variant.Kind(kindByte) == variant.SNV {
		v = variant.NewSNV(rangeindex.PosType(pos), ins[0])
	} else {
		v = variant.NewIndel(rangeindex.PosType(pos), rangeindex.PosType(delLen), ins)
	}
	return v, cov, nil
}
