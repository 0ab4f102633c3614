package payload

import "fmt"

// EncodeSmallStr renders s as a fixed-size small string record: one length
// byte followed by exactly capacity payload bytes, zero-padded. s must fit
// within capacity UTF-8 bytes.
func EncodeSmallStr(s string, capacity int) ([]byte, error) {
	raw := []byte(s)
	if len(raw) > capacity {
		return nil, fmt.Errorf("payload: string %q exceeds %d-byte capacity", s, capacity)
	}
	b := make([]byte, 1+capacity)
	b[0] = byte(len(raw))
	copy(b[1:], raw)
	return b, nil
}

// DecodeSmallStr parses a fixed-size small string record of exactly
// 1+capacity bytes.
func DecodeSmallStr(b []byte, capacity int) (string, error) {
	if len(b) != 1+capacity {
		return "", fmt.Errorf("payload: small string record must be %d bytes, got %d", 1+capacity, len(b))
	}
	n := int(b[0])
	if n > capacity {
		return "", fmt.Errorf("payload: small string declares length %d exceeding capacity %d", n, capacity)
	}
	return string(b[1 : 1+n]), nil
}

// ProfileNameCapacity is the maximum payload length of a profile name,
// ≤72 bytes per §3.
const ProfileNameCapacity = 72

// ProfileNameSize is the fixed wire size of a SetProfileName record.
const ProfileNameSize = 1 + ProfileNameCapacity

// EncodeProfileName renders name as the fixed-size profile-name record.
func EncodeProfileName(name string) ([]byte, error) {
	return EncodeSmallStr(name, ProfileNameCapacity)
}

// DecodeProfileName parses the fixed-size profile-name record.
func DecodeProfileName(b []byte) (string, error) {
	return DecodeSmallStr(b, ProfileNameCapacity)
}
