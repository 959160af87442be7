package wav

import (
	"encoding/binary"
	"testing"
)

func TestEncodeProducesValidHeader(t *testing.T) {
	samples := make([]int16, 100)
	buf := Encode(samples, 16000)
	if string(buf[0:4]) != "RIFF" {
		t.Errorf("missing RIFF tag")
	}
	if string(buf[8:12]) != "WAVE" {
		t.Errorf("missing WAVE tag")
	}
	if string(buf[12:16]) != "fmt " {
		t.Errorf("missing fmt tag")
	}
	if len(buf) != 44+200 {
		t.Errorf("len(buf) = %d, want %d", len(buf), 44+200)
	}
}

func TestComputeRMSSilence(t *testing.T) {
	samples := make([]int16, 1000)
	if got := ComputeRMS(samples); got != 0 {
		t.Errorf("ComputeRMS() = %v, want 0", got)
	}
}

func TestComputeRMSNonzero(t *testing.T) {
	samples := make([]int16, 100)
	for i := range samples {
		samples[i] = 16384
	}
	rms := ComputeRMS(samples)
	if rms <= 0.4 || rms >= 0.6 {
		t.Errorf("ComputeRMS() = %v, want in (0.4, 0.6)", rms)
	}
}

func TestComputeRMSEmpty(t *testing.T) {
	if got := ComputeRMS(nil); got != 0 {
		t.Errorf("ComputeRMS(nil) = %v, want 0", got)
	}
}

func TestFixSizesPatchesSentinel(t *testing.T) {
	buf := Encode(make([]int16, 50), 16000)
	binary.LittleEndian.PutUint32(buf[4:8], sentinelSize)
	fixed := FixSizes(buf)
	riffSize := binary.LittleEndian.Uint32(fixed[4:8])
	if riffSize != uint32(len(fixed)-8) {
		t.Errorf("riffSize = %d, want %d", riffSize, len(fixed)-8)
	}
}

func TestFixSizesNoopOnGoodWav(t *testing.T) {
	buf := Encode(make([]int16, 50), 16000)
	original := append([]byte(nil), buf...)
	fixed := FixSizes(buf)
	if string(fixed) != string(original) {
		t.Errorf("FixSizes() modified a well-formed buffer")
	}
}

func TestParseHeaderBasic(t *testing.T) {
	buf := Encode(make([]int16, 50), 24000)
	hdr, err := ParseHeader(buf)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if hdr.Channels != 1 {
		t.Errorf("Channels = %d, want 1", hdr.Channels)
	}
	if hdr.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", hdr.SampleRate)
	}
	if hdr.BitsPerSample != 16 {
		t.Errorf("BitsPerSample = %d, want 16", hdr.BitsPerSample)
	}
	if hdr.DataOffset != 44 {
		t.Errorf("DataOffset = %d, want 44", hdr.DataOffset)
	}
}

func TestParseHeaderSentinelSizes(t *testing.T) {
	buf := Encode(make([]int16, 50), 24000)
	binary.LittleEndian.PutUint32(buf[4:8], sentinelSize)
	binary.LittleEndian.PutUint32(buf[40:44], sentinelSize)
	hdr, err := ParseHeader(buf)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if hdr.Channels != 1 {
		t.Errorf("Channels = %d, want 1", hdr.Channels)
	}
	if hdr.SampleRate != 24000 {
		t.Errorf("SampleRate = %d, want 24000", hdr.SampleRate)
	}
	if hdr.DataOffset != 44 {
		t.Errorf("DataOffset = %d, want 44", hdr.DataOffset)
	}
}

func TestParseHeaderTooShort(t *testing.T) {
	if _, err := ParseHeader([]byte("RIFF")); err == nil {
		t.Errorf("ParseHeader() error = nil, want error")
	}
}

func TestParseHeaderNotRIFF(t *testing.T) {
	buf := Encode(make([]int16, 10), 16000)
	copy(buf[0:4], "NOPE")
	if _, err := ParseHeader(buf); err == nil {
		t.Errorf("ParseHeader() error = nil, want error")
	}
}
