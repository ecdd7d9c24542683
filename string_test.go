package serman

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "héllo", "日本語", "a😀b", "mixed ASCII ∑ text"} {
		t.Run(s, func(t *testing.T) {
			data, err := Marshal(String(s))
			require.NoError(t, err)
			got, err := Unmarshal[String](data)
			require.NoError(t, err)
			assert.Equal(t, s, string(got))
		})
	}
}

func TestStringLayout(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"Empty", "", []byte{0, 0, 0, 0}},
		{"ASCII", "abc", []byte{4, 0, 0, 0, 'a', 'b', 'c', 0}},
		{
			// é fits a byte but is not ASCII, so the wide form is used.
			"Latin1", "hé",
			[]byte{0xFD, 0xFF, 0xFF, 0xFF, 'h', 0, 0xE9, 0, 0, 0},
		},
		{
			"SurrogatePair", "😀",
			[]byte{0xFD, 0xFF, 0xFF, 0xFF, 0x3D, 0xD8, 0x00, 0xDE, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(String(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringPrefixSign(t *testing.T) {
	prefix := func(t *testing.T, s string) int32 {
		data, err := Marshal(String(s))
		require.NoError(t, err)
		v, err := Decode[I32](bytes.NewReader(data))
		require.NoError(t, err)
		return int32(v)
	}

	assert.EqualValues(t, len("narrow")+1, prefix(t, "narrow"))
	assert.EqualValues(t, -(len("日本語")/3 + 1), prefix(t, "日本語"))
	assert.EqualValues(t, -(4 + 1), prefix(t, "a😀b"), "a surrogate pair counts as two units")
}

func TestStringTruncation(t *testing.T) {
	t.Run("Narrow", func(t *testing.T) {
		data := []byte{6, 0, 0, 0, 'a', 'b', 0, 'c', 'd', 0, 0x7F}
		r, _ := NewReader(bytes.NewReader(data))
		var s string
		r.ReadString(&s)
		require.NoError(t, r.Err())
		assert.Equal(t, "ab", s)
		assert.EqualValues(t, 10, r.Count(), "the whole declared payload is consumed")

		next, err := r.ReadByte()
		require.NoError(t, err)
		assert.Equal(t, byte(0x7F), next)
	})

	t.Run("Wide", func(t *testing.T) {
		data := []byte{0xFC, 0xFF, 0xFF, 0xFF, 'x', 0, 0, 0, 'y', 0, 0, 0}
		r, _ := NewReader(bytes.NewReader(data))
		var s string
		r.ReadString(&s)
		require.NoError(t, r.Err())
		assert.Equal(t, "x", s)
		assert.EqualValues(t, 12, r.Count())
	})

	t.Run("NoTerminator", func(t *testing.T) {
		got, err := Unmarshal[String]([]byte{3, 0, 0, 0, 'a', 'b', 'c'})
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))

		got, err = Unmarshal[String]([]byte{0xFE, 0xFF, 0xFF, 0xFF, 'o', 0, 'k', 0})
		require.NoError(t, err)
		assert.Equal(t, "ok", string(got))
	})

	t.Run("LeadingTerminator", func(t *testing.T) {
		got, err := Unmarshal[String]([]byte{3, 0, 0, 0, 0, 'b', 'c'})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStringLossyNarrow(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    string
	}{
		{"InvalidByte", []byte{'a', 0xFF, 'b'}, "a\uFFFDb"},
		{"TruncatedSequence", []byte{'a', 0xE2, 0x82}, "a\uFFFD"},
		{"TruncatedFourByte", []byte{0xF0, 0x9F, 0x98, 'x'}, "\uFFFDx"},
		{"EncodedSurrogate", []byte{0xED, 0xA0, 0x80}, "\uFFFD\uFFFD\uFFFD"},
		{"ValidUTF8", []byte("é"), "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte{byte(len(tt.payload)), 0, 0, 0}, tt.payload...)
			got, err := Unmarshal[String](data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStringInvalidWide(t *testing.T) {
	payloads := map[string][]byte{
		"LoneHigh":     {0xFD, 0xFF, 0xFF, 0xFF, 0x00, 0xD8, 'a', 0, 0, 0},
		"LoneLow":      {0xFD, 0xFF, 0xFF, 0xFF, 0x00, 0xDC, 'a', 0, 0, 0},
		"ReversedPair": {0xFD, 0xFF, 0xFF, 0xFF, 0x00, 0xDC, 0x00, 0xD8, 0, 0},
		"HighAtEnd":    {0xFE, 0xFF, 0xFF, 0xFF, 'a', 0, 0x00, 0xD8},
	}

	for name, data := range payloads {
		t.Run(name+"/Generic", func(t *testing.T) {
			r, _ := NewReader(bytes.NewReader(data))
			r.WithErrorFunc(func(err *IOError) error { return &domainError{Kind: "io", Cause: err} })
			var s string
			r.ReadString(&s)

			var u16 *UTF16Error
			require.ErrorAs(t, r.Err(), &u16)
			assert.ErrorIs(t, r.Err(), ErrInvalidUTF16)
			var de *domainError
			assert.False(t, errors.As(r.Err(), &de), "validity failures are not I/O failures")
			assert.EqualValues(t, len(data), r.Count())
		})

		t.Run(name+"/Narrow", func(t *testing.T) {
			r, _ := NewReader(bytes.NewReader(data))
			var s string
			r.ReadString(&s)

			var ioErr *IOError
			require.ErrorAs(t, r.Err(), &ioErr)
			assert.Equal(t, "read string", ioErr.Op)
			assert.ErrorIs(t, r.Err(), ErrInvalidUTF16)
		})
	}
}

func TestStringShortPayload(t *testing.T) {
	tests := map[string][]byte{
		"Narrow":     {5, 0, 0, 0, 'a', 'b'},
		"Wide":       {0xFD, 0xFF, 0xFF, 0xFF, 'a', 0},
		"HugeNarrow": {0xFF, 0xFF, 0xFF, 0x7F, 'a', 'b', 'c'},
		"HugeWide":   {0x00, 0x00, 0x00, 0x80, 'a', 0},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal[String](data)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		})
	}
}

func TestReadStringPayload(t *testing.T) {
	r, _ := NewReader(bytes.NewReader([]byte{'a', 'b', 'c', 0, 'z', 0}))
	var narrow, wide string
	r.ReadStringPayload(4, &narrow)
	r.ReadStringPayload(-1, &wide)
	require.NoError(t, r.Err())
	assert.Equal(t, "abc", narrow)
	assert.Equal(t, "z", wide)

	var empty string
	r.ReadStringPayload(0, &empty)
	require.NoError(t, r.Err())
	assert.Empty(t, empty)
	assert.EqualValues(t, 6, r.Count())
}
