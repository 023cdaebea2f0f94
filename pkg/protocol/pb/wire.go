package pb

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Pointer helpers for optional fields, mirroring proto2 generated code.

// Uint32 returns a pointer to v.
func Uint32(v uint32) *uint32 { return &v }

// Uint64 returns a pointer to v.
func Uint64(v uint64) *uint64 { return &v }

// Int32 returns a pointer to v.
func Int32(v int32) *int32 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float32 returns a pointer to v.
func Float32(v float32) *float32 { return &v }

// ---- encode helpers: append a field only when the pointer is set ----

func putUint32(b []byte, num protowire.Number, v *uint32) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(*v))
}

func putUint64(b []byte, num protowire.Number, v *uint64) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, *v)
}

func putInt32(b []byte, num protowire.Number, v *int32) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(uint32(*v)))
}

func putBool(b []byte, num protowire.Number, v *bool) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	if *v {
		return protowire.AppendVarint(b, 1)
	}
	return protowire.AppendVarint(b, 0)
}

func putString(b []byte, num protowire.Number, v *string) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *v)
}

func putBytes(b []byte, num protowire.Number, v []byte) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func putFloat32(b []byte, num protowire.Number, v *float32) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(*v))
}

// Repeated scalar fields encode unpacked, proto2's default.

func putRepUint32(b []byte, num protowire.Number, vs []uint32) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(v))
	}
	return b
}

func putRepInt32(b []byte, num protowire.Number, vs []int32) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(v)))
	}
	return b
}

func putRepString(b []byte, num protowire.Number, vs []string) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	return b
}

func putMsg(b []byte, num protowire.Number, payload []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

// ---- decode helpers ----
//
// Each get* consumes one field body from b and stores it in dst. A field
// whose wire type does not match the schema is skipped, not an error, so
// peers with a newer schema revision stay decodable.

func skipField(b []byte, num protowire.Number, typ protowire.Type) ([]byte, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	return b[n:], nil
}

func getVarint(b []byte, num protowire.Number, typ protowire.Type) (uint64, []byte, bool, error) {
	if typ != protowire.VarintType {
		rest, err := skipField(b, num, typ)
		return 0, rest, false, err
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, false, protowire.ParseError(n)
	}
	return v, b[n:], true, nil
}

func getUint32(b []byte, num protowire.Number, typ protowire.Type, dst **uint32) ([]byte, error) {
	v, rest, ok, err := getVarint(b, num, typ)
	if ok {
		*dst = Uint32(uint32(v))
	}
	return rest, err
}

func getUint64(b []byte, num protowire.Number, typ protowire.Type, dst **uint64) ([]byte, error) {
	v, rest, ok, err := getVarint(b, num, typ)
	if ok {
		*dst = Uint64(v)
	}
	return rest, err
}

func getInt32(b []byte, num protowire.Number, typ protowire.Type, dst **int32) ([]byte, error) {
	v, rest, ok, err := getVarint(b, num, typ)
	if ok {
		*dst = Int32(int32(uint32(v)))
	}
	return rest, err
}

func getBool(b []byte, num protowire.Number, typ protowire.Type, dst **bool) ([]byte, error) {
	v, rest, ok, err := getVarint(b, num, typ)
	if ok {
		*dst = Bool(v != 0)
	}
	return rest, err
}

func getFloat32(b []byte, num protowire.Number, typ protowire.Type, dst **float32) ([]byte, error) {
	if typ != protowire.Fixed32Type {
		return skipField(b, num, typ)
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	*dst = Float32(math.Float32frombits(v))
	return b[n:], nil
}

func getBytesRaw(b []byte, num protowire.Number, typ protowire.Type) ([]byte, []byte, bool, error) {
	if typ != protowire.BytesType {
		rest, err := skipField(b, num, typ)
		return nil, rest, false, err
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, false, protowire.ParseError(n)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, b[n:], true, nil
}

func getString(b []byte, num protowire.Number, typ protowire.Type, dst **string) ([]byte, error) {
	v, rest, ok, err := getBytesRaw(b, num, typ)
	if ok {
		*dst = String(string(v))
	}
	return rest, err
}

func getBytes(b []byte, num protowire.Number, typ protowire.Type, dst *[]byte) ([]byte, error) {
	v, rest, ok, err := getBytesRaw(b, num, typ)
	if ok {
		*dst = v
	}
	return rest, err
}

// getRepUint32 accepts both unpacked and packed encodings.
func getRepUint32(b []byte, num protowire.Number, typ protowire.Type, dst *[]uint32) ([]byte, error) {
	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		*dst = append(*dst, uint32(v))
		return b[n:], nil
	case protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		for len(packed) > 0 {
			v, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			*dst = append(*dst, uint32(v))
			packed = packed[m:]
		}
		return b[n:], nil
	default:
		return skipField(b, num, typ)
	}
}

func getRepInt32(b []byte, num protowire.Number, typ protowire.Type, dst *[]int32) ([]byte, error) {
	var u []uint32
	rest, err := getRepUint32(b, num, typ, &u)
	for _, v := range u {
		*dst = append(*dst, int32(v))
	}
	return rest, err
}

func getRepString(b []byte, num protowire.Number, typ protowire.Type, dst *[]string) ([]byte, error) {
	v, rest, ok, err := getBytesRaw(b, num, typ)
	if ok {
		*dst = append(*dst, string(v))
	}
	return rest, err
}

func getMsg(b []byte, num protowire.Number, typ protowire.Type) ([]byte, []byte, bool, error) {
	return getBytesRaw(b, num, typ)
}
