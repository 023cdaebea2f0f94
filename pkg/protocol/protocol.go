// Package protocol frames the TLS byte stream into typed messages and back.
//
// Every message on the wire is TYPE(2 bytes, big-endian) followed by
// LENGTH(4 bytes, big-endian) followed by LENGTH payload bytes. Payloads are
// protobuf records per the shared schema in pkg/protocol/pb, except
// UDPTunnel whose payload is opaque voice data copied verbatim.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

const (
	// HeaderSize is the fixed frame header size: type(2) + length(4).
	HeaderSize = 6

	// MaxPayload caps a single frame's payload. A peer announcing more is
	// treated as a protocol violation and fails the connection.
	MaxPayload = 8 << 20 // 8 MiB
)

var (
	ErrPayloadTooLarge = errors.New("protocol: payload exceeds maximum frame size")
	ErrUnknownMessage  = errors.New("protocol: message type not in the schema")
)

// Type identifies a framed message kind on the wire.
type Type uint16

const (
	TypeVersion Type = iota
	TypeUDPTunnel
	TypeAuthenticate
	TypePing
	TypeReject
	TypeServerSync
	TypeChannelRemove
	TypeChannelState
	TypeUserRemove
	TypeUserState
	TypeBanList
	TypeTextMessage
	TypePermissionDenied
	TypeACL
	TypeQueryUsers
	TypeCryptSetup
	TypeContextActionModify
	TypeContextAction
	TypeUserList
	TypeVoiceTarget
	TypePermissionQuery
	TypeCodecVersion
	TypeUserStats
	TypeRequestBlob
	TypeServerConfig
	TypeSuggestConfig
)

// Message is any schema message that can ride in a frame.
type Message interface {
	Marshal() []byte
	Unmarshal([]byte) error
}

// TypeOf returns the wire type for a message, or ErrUnknownMessage for a
// type outside the schema.
func TypeOf(m Message) (Type, error) {
	switch m.(type) {
	case *pb.Version:
		return TypeVersion, nil
	case *pb.UDPTunnel:
		return TypeUDPTunnel, nil
	case *pb.Authenticate:
		return TypeAuthenticate, nil
	case *pb.Ping:
		return TypePing, nil
	case *pb.Reject:
		return TypeReject, nil
	case *pb.ServerSync:
		return TypeServerSync, nil
	case *pb.ChannelRemove:
		return TypeChannelRemove, nil
	case *pb.ChannelState:
		return TypeChannelState, nil
	case *pb.UserRemove:
		return TypeUserRemove, nil
	case *pb.UserState:
		return TypeUserState, nil
	case *pb.BanList:
		return TypeBanList, nil
	case *pb.TextMessage:
		return TypeTextMessage, nil
	case *pb.PermissionDenied:
		return TypePermissionDenied, nil
	case *pb.ACL:
		return TypeACL, nil
	case *pb.QueryUsers:
		return TypeQueryUsers, nil
	case *pb.CryptSetup:
		return TypeCryptSetup, nil
	case *pb.ContextActionModify:
		return TypeContextActionModify, nil
	case *pb.ContextAction:
		return TypeContextAction, nil
	case *pb.UserList:
		return TypeUserList, nil
	case *pb.VoiceTarget:
		return TypeVoiceTarget, nil
	case *pb.PermissionQuery:
		return TypePermissionQuery, nil
	case *pb.CodecVersion:
		return TypeCodecVersion, nil
	case *pb.UserStats:
		return TypeUserStats, nil
	case *pb.RequestBlob:
		return TypeRequestBlob, nil
	case *pb.ServerConfig:
		return TypeServerConfig, nil
	case *pb.SuggestConfig:
		return TypeSuggestConfig, nil
	default:
		return 0, ErrUnknownMessage
	}
}

// newMessage allocates the empty message for a wire type, or nil for types
// outside the table (which the decoder silently skips).
func newMessage(t Type) Message {
	switch t {
	case TypeVersion:
		return &pb.Version{}
	case TypeUDPTunnel:
		return &pb.UDPTunnel{}
	case TypeAuthenticate:
		return &pb.Authenticate{}
	case TypePing:
		return &pb.Ping{}
	case TypeReject:
		return &pb.Reject{}
	case TypeServerSync:
		return &pb.ServerSync{}
	case TypeChannelRemove:
		return &pb.ChannelRemove{}
	case TypeChannelState:
		return &pb.ChannelState{}
	case TypeUserRemove:
		return &pb.UserRemove{}
	case TypeUserState:
		return &pb.UserState{}
	case TypeBanList:
		return &pb.BanList{}
	case TypeTextMessage:
		return &pb.TextMessage{}
	case TypePermissionDenied:
		return &pb.PermissionDenied{}
	case TypeACL:
		return &pb.ACL{}
	case TypeQueryUsers:
		return &pb.QueryUsers{}
	case TypeCryptSetup:
		return &pb.CryptSetup{}
	case TypeContextActionModify:
		return &pb.ContextActionModify{}
	case TypeContextAction:
		return &pb.ContextAction{}
	case TypeUserList:
		return &pb.UserList{}
	case TypeVoiceTarget:
		return &pb.VoiceTarget{}
	case TypePermissionQuery:
		return &pb.PermissionQuery{}
	case TypeCodecVersion:
		return &pb.CodecVersion{}
	case TypeUserStats:
		return &pb.UserStats{}
	case TypeRequestBlob:
		return &pb.RequestBlob{}
	case TypeServerConfig:
		return &pb.ServerConfig{}
	case TypeSuggestConfig:
		return &pb.SuggestConfig{}
	default:
		return nil
	}
}

// Encode serializes a full frame: header plus payload.
func Encode(m Message) ([]byte, error) {
	t, err := TypeOf(m)
	if err != nil {
		return nil, err
	}
	payload := m.Marshal()
	if len(payload) > MaxPayload {
		return nil, ErrPayloadTooLarge
	}

	frame := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint16(frame[0:2], uint16(t))
	binary.BigEndian.PutUint32(frame[2:6], uint32(len(payload)))
	copy(frame[HeaderSize:], payload)
	return frame, nil
}

// Decode attempts to consume one frame from buf.
//
// Returns (msg, n, nil) with n the exact bytes consumed; (nil, n, nil) with
// n > 0 when a well-formed frame of an unknown type was skipped;
// (nil, 0, nil) when buf does not yet hold a complete frame; and a non-nil
// error on a malformed payload or an oversized length, both fatal to the
// connection. Decode never partially consumes a frame.
func Decode(buf []byte) (Message, int, error) {
	if len(buf) < HeaderSize {
		return nil, 0, nil
	}

	t := Type(binary.BigEndian.Uint16(buf[0:2]))
	length := binary.BigEndian.Uint32(buf[2:6])
	if length > MaxPayload {
		return nil, 0, fmt.Errorf("protocol: frame length %d: %w", length, ErrPayloadTooLarge)
	}
	total := HeaderSize + int(length)
	if len(buf) < total {
		return nil, 0, nil
	}

	msg := newMessage(t)
	if msg == nil {
		// Unknown type: consume and continue.
		return nil, total, nil
	}
	if err := msg.Unmarshal(buf[HeaderSize:total]); err != nil {
		return nil, 0, fmt.Errorf("protocol: decode type %d: %w", t, err)
	}
	return msg, total, nil
}

// WriteMessage encodes m and writes the frame to w.
func WriteMessage(w io.Writer, m Message) error {
	frame, err := Encode(m)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("protocol: write frame: %w", err)
	}
	return nil
}

// Decoder incrementally decodes frames from a stream.
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder wraps a reader, typically the TLS connection.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next blocks until one known message is decoded. Unknown types are skipped.
// Returns io.EOF (possibly wrapped) when the stream ends cleanly between
// frames.
func (d *Decoder) Next() (Message, error) {
	var chunk [4096]byte
	for {
		msg, n, err := Decode(d.buf)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			d.buf = d.buf[n:]
			if msg == nil {
				continue // skipped unknown type
			}
			return msg, nil
		}

		rn, err := d.r.Read(chunk[:])
		if rn > 0 {
			d.buf = append(d.buf, chunk[:rn]...)
			continue
		}
		if err != nil {
			if err == io.EOF && len(d.buf) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
}
