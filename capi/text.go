package capi

import (
	"unicode/utf8"

	temporalcapi "github.com/wippyai/temporal-capi"
	"github.com/wippyai/temporal-capi/errors"
)

// Text crosses the boundary as UTF-8 bytes with an explicit length; nothing
// is NUL-terminated and nothing is scanned for a terminator.

// ValidateText rejects input that is not well-formed UTF-8, reporting the
// offset of the first bad byte.
func ValidateText(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return errors.ParseFailure(i, "invalid UTF-8")
		}
		i += size
	}
	return nil
}

// ReadText copies (ptr, length) out of linear memory and validates it.
func ReadText(mem temporalcapi.Memory, ptr, length uint32) (string, error) {
	if length == 0 {
		return "", nil
	}
	if ptr == 0 {
		return "", errors.InvalidArgument(errors.PhaseBoundary, []string{"text"}, "null pointer with non-zero length")
	}
	b, err := mem.Read(ptr, length)
	if err != nil {
		return "", err
	}
	s := string(b)
	if err := ValidateText(s); err != nil {
		return "", err
	}
	return s, nil
}

// PutText writes s into the caller buffer (buf, capacity) and its length to
// lenPtr. When s does not fit, nothing is written to buf, the length output
// is set to zero and the error reports the exact capacity required.
func PutText(mem temporalcapi.Memory, s string, buf, capacity, lenPtr uint32) error {
	if lenPtr == 0 {
		return errors.InvalidArgument(errors.PhaseBoundary, []string{"lenOut"}, "null pointer")
	}
	if uint64(len(s)) > uint64(capacity) {
		if err := mem.WriteU32(lenPtr, 0); err != nil {
			return err
		}
		return errors.BufferTooSmall(errors.PhaseFormat, len(s), int(capacity))
	}
	if len(s) > 0 {
		if buf == 0 {
			return errors.InvalidArgument(errors.PhaseBoundary, []string{"buf"}, "null pointer with non-zero capacity")
		}
		if sz, ok := mem.(temporalcapi.MemorySizer); ok && uint64(lenPtr)+4 > uint64(sz.Size()) {
			return errors.New(errors.PhaseBoundary, errors.KindInvalidArgument).Path("lenOut").Value(lenPtr).
				Detail("length output outside memory").Build()
		}
		if err := mem.Write(buf, []byte(s)); err != nil {
			return err
		}
	}
	return mem.WriteU32(lenPtr, uint32(len(s)))
}

// CopyText is PutText for Go callers: it copies s into dst and returns the
// number of bytes written, or BufferTooSmall leaving dst untouched.
func CopyText(dst []byte, s string) (int, error) {
	if len(s) > len(dst) {
		return 0, errors.BufferTooSmall(errors.PhaseFormat, len(s), len(dst))
	}
	return copy(dst, s), nil
}

// TextNew stores s as an owned Text handle. Every formatting operation can
// hand its output back this way instead of through a caller buffer.
func (s *Surface) TextNew(str string) (h Handle, err error) {
	defer s.guard("text_new", &err)
	return s.texts.Insert(str)
}

// text reads an owned Text or a borrowed view.
func (s *Surface) text(h Handle) (string, error) {
	id, ok := s.table.TypeOf(h)
	if !ok {
		_, err := s.table.Lookup(h, TypeText)
		return "", err
	}
	switch id {
	case TypeText:
		return s.texts.Get(h)
	case TypeTextView:
		return s.views.Get(h)
	}
	return "", errors.InvalidHandle(uint32(h), "not a text handle")
}

// TextString returns the content of a Text or view handle.
func (s *Surface) TextString(h Handle) (str string, err error) {
	defer s.guard("text_string", &err)
	return s.text(h)
}

// TextLen returns the byte length of a Text or view handle.
func (s *Surface) TextLen(h Handle) (n uint32, err error) {
	defer s.guard("text_len", &err)
	str, err := s.text(h)
	if err != nil {
		return 0, err
	}
	return uint32(len(str)), nil
}

// TextCopy copies a Text or view into dst.
func (s *Surface) TextCopy(h Handle, dst []byte) (n int, err error) {
	defer s.guard("text_copy", &err)
	str, err := s.text(h)
	if err != nil {
		return 0, err
	}
	return CopyText(dst, str)
}

// TextView returns a borrowed view of an owned Text. The view dies with
// the Text.
func (s *Surface) TextView(h Handle) (view Handle, err error) {
	defer s.guard("text_view", &err)
	str, done, err := s.texts.Borrow(h)
	if err != nil {
		return 0, err
	}
	defer done()
	return s.views.InsertView(h, str)
}

// TextRelease releases an owned Text, or drops a view early.
func (s *Surface) TextRelease(h Handle) (err error) {
	defer s.guard("text_release", &err)
	id, ok := s.table.TypeOf(h)
	if !ok || (id != TypeText && id != TypeTextView) {
		_, err := s.table.Lookup(h, TypeText)
		if err == nil {
			err = errors.InvalidHandle(uint32(h), "not a text handle")
		}
		return err
	}
	_, err = s.table.Remove(h)
	return err
}
