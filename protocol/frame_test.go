package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x05},
		bytes.Repeat([]byte{0xAB}, 1),
		bytes.Repeat([]byte{0x42}, 255),
		bytes.Repeat([]byte{0x7F}, MaxPayloadSize),
	}
	for _, payload := range cases {
		frame, err := EncodeFrame(payload)
		require.NoError(t, err)
		got, err := DecodeFrame(bytes.NewReader(frame))
		require.NoError(t, err)
		// bytes.Equal, not assert.Equal: a zero-length frame decodes to nil,
		// and the nil and empty inputs above are the same byte sequence.
		assert.True(t, bytes.Equal(payload, got), "payload of %d bytes did not round-trip", len(payload))
	}
}

func TestEncodeFrameRejectsOversize(t *testing.T) {
	_, err := EncodeFrame(make([]byte, MaxPayloadSize+1))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestEncodeFrameLengthPrefixIsUppercaseHex(t *testing.T) {
	frame, err := EncodeFrame(make([]byte, 0xAB))
	require.NoError(t, err)
	assert.Equal(t, "0AB", string(frame[:3]))
}

func TestDecodePacketSizeAcceptsBothHexCases(t *testing.T) {
	n, err := DecodePacketSize('0', 'a', 'F')
	require.NoError(t, err)
	assert.Equal(t, 0x0AF, n)
}

func TestDecodePacketSizeRejectsNonHex(t *testing.T) {
	_, err := DecodePacketSize('0', '0', 'z')
	assert.ErrorIs(t, err, ErrBadLengthPrefix)
}

func TestDecodeFrameShortPayloadIsAnError(t *testing.T) {
	_, err := DecodeFrame(bytes.NewReader([]byte("005\x01\x02")))
	assert.Error(t, err)
}

func TestFrameReaderReadsSuccessiveFrames(t *testing.T) {
	var buf bytes.Buffer
	f1, _ := EncodeFrame([]byte{0x05})
	f2, _ := EncodeFrame([]byte{0x06, 0x07})
	buf.Write(f1)
	buf.Write(f2)

	fr := NewFrameReader(&buf)
	p1, err := fr.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05}, p1)

	p2, err := fr.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0x07}, p2)
}
