package pb

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestOptionalFieldPresence(t *testing.T) {
	// Only session set: every other field must come back absent, not
	// zero-valued. Presence is what lets deltas stay sparse.
	in := &UserState{Session: Uint32(7)}
	var out UserState
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Session == nil || *out.Session != 7 {
		t.Fatalf("Session: got %v, want 7", out.Session)
	}
	if out.ChannelID != nil || out.SelfMute != nil || out.SelfDeaf != nil || out.Name != nil {
		t.Fatalf("absent fields decoded as present: %#v", out)
	}
}

func TestExplicitFalseSurvives(t *testing.T) {
	// false is a legal present value and must be distinguishable from unset.
	in := &UserState{Session: Uint32(1), SelfMute: Bool(false)}
	var out UserState
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.SelfMute == nil || *out.SelfMute {
		t.Fatalf("SelfMute: got %v, want present false", out.SelfMute)
	}
	if out.SelfDeaf != nil {
		t.Fatalf("SelfDeaf decoded as present")
	}
}

func TestEmptyMessageMarshalsEmpty(t *testing.T) {
	var v Version
	if b := v.Marshal(); len(b) != 0 {
		t.Fatalf("empty Version marshaled %d bytes", len(b))
	}
	var out Version
	if err := out.Unmarshal(nil); err != nil {
		t.Fatalf("Unmarshal(nil): %v", err)
	}
	if out.Version != nil || out.Release != nil {
		t.Fatalf("empty decode produced fields: %#v", out)
	}
}

func TestUnknownFieldsSkipped(t *testing.T) {
	// A newer peer may send fields this build does not know. They must be
	// skipped, and the known fields still decode.
	b := (&Ping{Timestamp: Uint64(99)}).Marshal()
	b = protowire.AppendTag(b, 60, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)
	b = protowire.AppendTag(b, 61, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))

	var out Ping
	if err := out.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Timestamp == nil || *out.Timestamp != 99 {
		t.Fatalf("Timestamp: got %v, want 99", out.Timestamp)
	}
}

func TestRepeatedPackedAccepted(t *testing.T) {
	// Writers are free to pack repeated varints; the decoder takes both
	// forms. TextMessage.session is the field clients actually pack.
	var packed []byte
	packed = protowire.AppendVarint(packed, 2)
	packed = protowire.AppendVarint(packed, 3)
	packed = protowire.AppendVarint(packed, 5)

	var b []byte
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)

	var out TextMessage
	if err := out.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out.Session) != 3 || out.Session[0] != 2 || out.Session[1] != 3 || out.Session[2] != 5 {
		t.Fatalf("Session: got %v, want [2 3 5]", out.Session)
	}
}

func TestNegativeInt32RoundTrip(t *testing.T) {
	in := &CodecVersion{Alpha: Int32(-2147483637), Beta: Int32(-1)}
	var out CodecVersion
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Alpha == nil || *out.Alpha != -2147483637 {
		t.Fatalf("Alpha: got %v, want -2147483637", out.Alpha)
	}
	if out.Beta == nil || *out.Beta != -1 {
		t.Fatalf("Beta: got %v, want -1", out.Beta)
	}
}

func TestNestedMessageRoundTrip(t *testing.T) {
	in := &UserList{Users: []UserListUser{
		{UserID: Uint32(1), Name: String("alice")},
		{UserID: Uint32(2), Name: String("bob")},
	}}
	var out UserList
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out.Users) != 2 {
		t.Fatalf("Users: got %d entries, want 2", len(out.Users))
	}
	if *out.Users[0].Name != "alice" || *out.Users[1].UserID != 2 {
		t.Fatalf("nested fields mismatch: %#v", out.Users)
	}
}

func TestTruncatedPayloadFails(t *testing.T) {
	b := (&Authenticate{Username: String("alice"), Password: String("pw")}).Marshal()
	if err := new(Authenticate).Unmarshal(b[:len(b)-1]); err == nil {
		t.Fatal("Unmarshal(truncated): expected error")
	}
}
