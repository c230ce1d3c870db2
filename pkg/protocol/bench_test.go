package protocol

import (
	"bytes"
	"testing"
)

// === Encoder/Decoder Benchmarks ===

func BenchmarkEncoder_MixedTypes(b *testing.B) {
	e := NewEncoder()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Reset()
		e.WriteCoord(10.5)
		e.WriteCoord(-20.5)
		e.WriteFloat32(0.75)
		e.WriteString("16px sans-serif")
		e.WriteBool(true)
	}
}

func BenchmarkDecoder_MixedTypes(b *testing.B) {
	e := NewEncoder()
	e.WriteCoord(10.5)
	e.WriteCoord(-20.5)
	e.WriteFloat32(0.75)
	e.WriteString("16px sans-serif")
	e.WriteBool(true)
	data := e.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := NewDecoder(data)
		d.ReadCoord()
		d.ReadCoord()
		d.ReadFloat32()
		d.ReadString()
		d.ReadByte()
	}
}

func BenchmarkRoundCoord(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RoundCoord(123.456)
	}
}

// === Frame Benchmarks ===

func BenchmarkFrame_EncodeRect(b *testing.B) {
	f := NewFrame(OpFillRect, 3, []byte{0, 10, 0, 10, 0, 50, 0, 50})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Encode()
	}
}

func BenchmarkFrame_Read(b *testing.B) {
	data := NewFrame(OpFillRect, 3, []byte{0, 10, 0, 10, 0, 50, 0, 50}).Encode()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ReadFrame(bytes.NewReader(data))
	}
}

// === Gradient Benchmarks ===

func BenchmarkGradient_Encode(b *testing.B) {
	g := NewLinearGradient(0, 0, 100, 100)
	g.AddColorStop(0, "red")
	g.AddColorStop(0.5, "#00ff00")
	g.AddColorStop(1, "blue")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = EncodeGradient(g)
	}
}

func BenchmarkGradient_Decode(b *testing.B) {
	g := NewLinearGradient(0, 0, 100, 100)
	g.AddColorStop(0, "red")
	g.AddColorStop(0.5, "#00ff00")
	g.AddColorStop(1, "blue")
	data, err := EncodeGradient(g)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DecodeGradient(data)
	}
}

// === Query Benchmarks ===

func BenchmarkRequest_Encode(b *testing.B) {
	id := SurfaceID(4)
	req := &Request{ID: &id, Action: "create", Args: []any{300, 150}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = req.Encode()
	}
}
