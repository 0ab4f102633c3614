package payload

import "fmt"

// Field capacities for each of the twelve SystemStats small strings (§3).
// Names get more room than the numeric readouts next to them.
const (
	statsNameCap  = 32
	statsValueCap = 8
	statsUnitCap  = 4
)

// SystemStats carries the twelve small strings the on-device screen shows
// as host telemetry (§3). Each field is rendered host-side into an
// aligned numeric presentation (e.g. "37.2") before being sent; the wire
// format itself just concatenates fixed small-string records in field
// order.
type SystemStats struct {
	CPUName string
	CPUUsage string
	CPUTemp  string

	MemUsed  string
	MemTotal string
	MemUnit  string

	GPUName  string
	GPUUsage string
	GPUTemp  string

	VRAMUsed  string
	VRAMTotal string
	VRAMUnit  string
}

type statsField struct {
	value string
	cap   int
}

func (s SystemStats) fields() [12]statsField {
	return [12]statsField{
		{s.CPUName, statsNameCap},
		{s.CPUUsage, statsValueCap},
		{s.CPUTemp, statsValueCap},
		{s.MemUsed, statsValueCap},
		{s.MemTotal, statsValueCap},
		{s.MemUnit, statsUnitCap},
		{s.GPUName, statsNameCap},
		{s.GPUUsage, statsValueCap},
		{s.GPUTemp, statsValueCap},
		{s.VRAMUsed, statsValueCap},
		{s.VRAMTotal, statsValueCap},
		{s.VRAMUnit, statsUnitCap},
	}
}

// SystemStatsSize is the fixed wire size of a SetSystemStats record.
func SystemStatsSize() int {
	size := 0
	var zero SystemStats
	for _, f := range zero.fields() {
		size += 1 + f.cap
	}
	return size
}

// Encode concatenates the twelve fields as fixed small-string records.
func (s SystemStats) Encode() ([]byte, error) {
	var out []byte
	for _, f := range s.fields() {
		rec, err := EncodeSmallStr(f.value, f.cap)
		if err != nil {
			return nil, err
		}
		out = append(out, rec...)
	}
	return out, nil
}

// DecodeSystemStats parses the fixed-size SetSystemStats record.
func DecodeSystemStats(b []byte) (SystemStats, error) {
	var s SystemStats
	if len(b) != SystemStatsSize() {
		return s, fmt.Errorf("payload: system stats record must be %d bytes, got %d", SystemStatsSize(), len(b))
	}
	var zero SystemStats
	values := make([]string, 0, 12)
	off := 0
	for _, f := range zero.fields() {
		recLen := 1 + f.cap
		v, err := DecodeSmallStr(b[off:off+recLen], f.cap)
		if err != nil {
			return s, err
		}
		values = append(values, v)
		off += recLen
	}
	s.CPUName, s.CPUUsage, s.CPUTemp = values[0], values[1], values[2]
	s.MemUsed, s.MemTotal, s.MemUnit = values[3], values[4], values[5]
	s.GPUName, s.GPUUsage, s.GPUTemp = values[6], values[7], values[8]
	s.VRAMUsed, s.VRAMTotal, s.VRAMUnit = values[9], values[10], values[11]
	return s, nil
}
