package parser

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"ypbank/internal/domain"
)

const (
	Magic = "YPBN"
	// BodyLen is the size of the fixed part of a frame body, i.e. everything
	// after the body length field except the description bytes.
	BodyLen = 46
)

// Binary is the frame format. Each frame starts with Magic followed by a
// big-endian body length, the fixed fields and a length-prefixed description.
//
// The body length is redundant with the description length. It is ignored on
// decode unless StrictBodyLength is set, in which case a mismatch is a parse
// error.
type Binary struct {
	StrictBodyLength bool
}

func (Binary) Format() Format { return Bin }

func (b Binary) Decode(r io.Reader) ([]domain.Transaction, error) {
	br := bufio.NewReader(r)

	var result []domain.Transaction
	for index := 0; ; index++ {
		var magic [4]byte
		if _, err := io.ReadFull(br, magic[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, readErr(err)
		}
		if string(magic[:]) != Magic {
			break
		}

		tx, err := b.decodeFrame(br, index)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, nil
}

// frameReader reads the mandatory fields of a frame. The first failure is kept
// and every later read becomes a no-op.
type frameReader struct {
	r   io.Reader
	err error
}

func (f *frameReader) read(p []byte) {
	if f.err != nil {
		return
	}
	if _, err := io.ReadFull(f.r, p); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		f.err = err
	}
}

func (f *frameReader) u64() uint64 {
	var buf [8]byte
	f.read(buf[:])
	return binary.BigEndian.Uint64(buf[:])
}

func (f *frameReader) u32() uint32 {
	var buf [4]byte
	f.read(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (f *frameReader) u8() byte {
	var buf [1]byte
	f.read(buf[:])
	return buf[0]
}

func (f *frameReader) str(n uint32) string {
	if f.err != nil || n == 0 {
		return ""
	}
	// Copy incrementally so a corrupt length cannot force one huge allocation.
	var buf bytes.Buffer
	written, err := io.CopyN(&buf, f.r, int64(n))
	if err != nil {
		if errors.Is(err, io.EOF) && written < int64(n) {
			err = io.ErrUnexpectedEOF
		}
		f.err = err
		return ""
	}
	return buf.String()
}

func (b Binary) decodeFrame(r io.Reader, index int) (domain.Transaction, error) {
	tx := domain.New()
	f := &frameReader{r: r}

	bodyLen := f.u32()
	tx.ID = f.u64()
	typeCode := f.u8()
	tx.FromUserID = f.u64()
	tx.ToUserID = f.u64()
	tx.Amount = f.u64()
	tx.Timestamp = f.u64()
	statusCode := f.u8()
	descLen := f.u32()
	desc := f.str(descLen)
	if f.err != nil {
		return tx, readErr(fmt.Errorf("frame %d: %w", index, f.err))
	}

	var err error
	if tx.Type, err = domain.TxTypeFromCode(typeCode); err != nil {
		return tx, &ParseError{Format: Bin, Index: index, Err: err}
	}
	if tx.Status, err = domain.TxStatusFromCode(statusCode); err != nil {
		return tx, &ParseError{Format: Bin, Index: index, Err: err}
	}
	if b.StrictBodyLength && uint64(bodyLen) != BodyLen+uint64(descLen) {
		return tx, &ParseError{Format: Bin, Index: index,
			Err: fmt.Errorf("body length %d does not match description length %d", bodyLen, descLen)}
	}
	tx.Description = unquote(desc)
	return tx, nil
}

func (Binary) Encode(w io.Writer, txs []domain.Transaction) error {
	bw := bufio.NewWriter(w)
	for i, tx := range txs {
		descLen := len(tx.Description)
		if uint64(descLen) > math.MaxUint32-BodyLen {
			return &ParseError{Format: Bin, Index: i,
				Err: fmt.Errorf("description of %d bytes does not fit in a frame", descLen)}
		}

		var frame [8 + BodyLen]byte
		copy(frame[0:4], Magic)
		binary.BigEndian.PutUint32(frame[4:8], uint32(BodyLen+descLen))
		binary.BigEndian.PutUint64(frame[8:16], tx.ID)
		frame[16] = tx.Type.Code()
		binary.BigEndian.PutUint64(frame[17:25], tx.FromUserID)
		binary.BigEndian.PutUint64(frame[25:33], tx.ToUserID)
		binary.BigEndian.PutUint64(frame[33:41], tx.Amount)
		binary.BigEndian.PutUint64(frame[41:49], tx.Timestamp)
		frame[49] = tx.Status.Code()
		binary.BigEndian.PutUint32(frame[50:54], uint32(descLen))

		if _, err := bw.Write(frame[:]); err != nil {
			return writeErr(err)
		}
		if descLen > 0 {
			if _, err := bw.WriteString(tx.Description); err != nil {
				return writeErr(err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}
