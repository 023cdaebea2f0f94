// Package pb is a hand-maintained mirror of the Mumble.proto schema subset
// shared between server and client. Field numbers and wire types are fixed
// by that schema and must not change; optional fields use pointers so an
// unset field is distinguishable from a zero value, as in proto2.
//
// Payloads are standard protobuf wire format, assembled with
// google.golang.org/protobuf/encoding/protowire. UDPTunnel is the one
// exception: its payload is an opaque byte string copied verbatim.
package pb

import "google.golang.org/protobuf/encoding/protowire"

// Version announces protocol and build info. First message in both
// directions.
type Version struct {
	Version   *uint32 // 1: major<<16 | minor<<8 | patch
	Release   *string // 2
	OS        *string // 3
	OSVersion *string // 4
}

func (m *Version) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Version)
	b = putString(b, 2, m.Release)
	b = putString(b, 3, m.OS)
	b = putString(b, 4, m.OSVersion)
	return b
}

func (m *Version) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Version)
		case 2:
			b, err = getString(b, num, typ, &m.Release)
		case 3:
			b, err = getString(b, num, typ, &m.OS)
		case 4:
			b, err = getString(b, num, typ, &m.OSVersion)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UDPTunnel carries opaque voice bytes through the TLS stream. The server
// forwards Packet verbatim and never inspects it.
type UDPTunnel struct {
	Packet []byte
}

func (m *UDPTunnel) Marshal() []byte { return m.Packet }

func (m *UDPTunnel) Unmarshal(b []byte) error {
	m.Packet = make([]byte, len(b))
	copy(m.Packet, b)
	return nil
}

// Authenticate is the client's credential presentation.
type Authenticate struct {
	Username     *string  // 1
	Password     *string  // 2
	Tokens       []string // 3
	CeltVersions []int32  // 4
	Opus         *bool    // 5
}

func (m *Authenticate) Marshal() []byte {
	var b []byte
	b = putString(b, 1, m.Username)
	b = putString(b, 2, m.Password)
	b = putRepString(b, 3, m.Tokens)
	b = putRepInt32(b, 4, m.CeltVersions)
	b = putBool(b, 5, m.Opus)
	return b
}

func (m *Authenticate) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getString(b, num, typ, &m.Username)
		case 2:
			b, err = getString(b, num, typ, &m.Password)
		case 3:
			b, err = getRepString(b, num, typ, &m.Tokens)
		case 4:
			b, err = getRepInt32(b, num, typ, &m.CeltVersions)
		case 5:
			b, err = getBool(b, num, typ, &m.Opus)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Ping is echoed back to the sender unchanged; clients use it for liveness.
type Ping struct {
	Timestamp  *uint64  // 1
	Good       *uint32  // 2
	Late       *uint32  // 3
	Lost       *uint32  // 4
	Resync     *uint32  // 5
	UDPPackets *uint32  // 6
	TCPPackets *uint32  // 7
	UDPPingAvg *float32 // 8
	UDPPingVar *float32 // 9
	TCPPingAvg *float32 // 10
	TCPPingVar *float32 // 11
}

func (m *Ping) Marshal() []byte {
	var b []byte
	b = putUint64(b, 1, m.Timestamp)
	b = putUint32(b, 2, m.Good)
	b = putUint32(b, 3, m.Late)
	b = putUint32(b, 4, m.Lost)
	b = putUint32(b, 5, m.Resync)
	b = putUint32(b, 6, m.UDPPackets)
	b = putUint32(b, 7, m.TCPPackets)
	b = putFloat32(b, 8, m.UDPPingAvg)
	b = putFloat32(b, 9, m.UDPPingVar)
	b = putFloat32(b, 10, m.TCPPingAvg)
	b = putFloat32(b, 11, m.TCPPingVar)
	return b
}

func (m *Ping) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint64(b, num, typ, &m.Timestamp)
		case 2:
			b, err = getUint32(b, num, typ, &m.Good)
		case 3:
			b, err = getUint32(b, num, typ, &m.Late)
		case 4:
			b, err = getUint32(b, num, typ, &m.Lost)
		case 5:
			b, err = getUint32(b, num, typ, &m.Resync)
		case 6:
			b, err = getUint32(b, num, typ, &m.UDPPackets)
		case 7:
			b, err = getUint32(b, num, typ, &m.TCPPackets)
		case 8:
			b, err = getFloat32(b, num, typ, &m.UDPPingAvg)
		case 9:
			b, err = getFloat32(b, num, typ, &m.UDPPingVar)
		case 10:
			b, err = getFloat32(b, num, typ, &m.TCPPingAvg)
		case 11:
			b, err = getFloat32(b, num, typ, &m.TCPPingVar)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Reject type codes.
const (
	RejectNone              = 0
	RejectWrongVersion      = 1
	RejectInvalidUsername   = 2
	RejectWrongUserPW       = 3
	RejectWrongServerPW     = 4
	RejectUsernameInUse     = 5
	RejectServerFull        = 6
	RejectNoCertificate     = 7
	RejectAuthenticatorFail = 8
)

// Reject terminates an unsuccessful handshake with a typed reason.
type Reject struct {
	Type   *uint32 // 1
	Reason *string // 2
}

func (m *Reject) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Type)
	b = putString(b, 2, m.Reason)
	return b
}

func (m *Reject) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Type)
		case 2:
			b, err = getString(b, num, typ, &m.Reason)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ServerSync completes the handshake and hands the client its session id.
type ServerSync struct {
	Session      *uint32 // 1
	MaxBandwidth *uint32 // 2
	WelcomeText  *string // 3
	Permissions  *uint64 // 4
}

func (m *ServerSync) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Session)
	b = putUint32(b, 2, m.MaxBandwidth)
	b = putString(b, 3, m.WelcomeText)
	b = putUint64(b, 4, m.Permissions)
	return b
}

func (m *ServerSync) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Session)
		case 2:
			b, err = getUint32(b, num, typ, &m.MaxBandwidth)
		case 3:
			b, err = getString(b, num, typ, &m.WelcomeText)
		case 4:
			b, err = getUint64(b, num, typ, &m.Permissions)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ChannelRemove announces a channel deletion.
type ChannelRemove struct {
	ChannelID *uint32 // 1
}

func (m *ChannelRemove) Marshal() []byte {
	return putUint32(nil, 1, m.ChannelID)
}

func (m *ChannelRemove) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ChannelState describes one channel; the server sends the full sorted list
// during bootstrap.
type ChannelState struct {
	ChannelID   *uint32 // 1
	Parent      *uint32 // 2
	Name        *string // 3
	Description *string // 5
	MaxUsers    *uint32 // 11
}

func (m *ChannelState) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.ChannelID)
	b = putUint32(b, 2, m.Parent)
	b = putString(b, 3, m.Name)
	b = putString(b, 5, m.Description)
	b = putUint32(b, 11, m.MaxUsers)
	return b
}

func (m *ChannelState) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		case 2:
			b, err = getUint32(b, num, typ, &m.Parent)
		case 3:
			b, err = getString(b, num, typ, &m.Name)
		case 5:
			b, err = getString(b, num, typ, &m.Description)
		case 11:
			b, err = getUint32(b, num, typ, &m.MaxUsers)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UserRemove tells remaining peers that a session departed.
type UserRemove struct {
	Session *uint32 // 1
	Actor   *uint32 // 2
	Reason  *string // 3
	Ban     *bool   // 4
}

func (m *UserRemove) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Session)
	b = putUint32(b, 2, m.Actor)
	b = putString(b, 3, m.Reason)
	b = putBool(b, 4, m.Ban)
	return b
}

func (m *UserRemove) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Session)
		case 2:
			b, err = getUint32(b, num, typ, &m.Actor)
		case 3:
			b, err = getString(b, num, typ, &m.Reason)
		case 4:
			b, err = getBool(b, num, typ, &m.Ban)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UserState is a sparse delta of one user's presence. Only set fields carry
// meaning; an unset field leaves the peer's value untouched.
type UserState struct {
	Session   *uint32 // 1
	Actor     *uint32 // 2
	Name      *string // 3
	UserID    *uint32 // 4
	ChannelID *uint32 // 5
	Mute      *bool   // 6
	Deaf      *bool   // 7
	SelfMute  *bool   // 9
	SelfDeaf  *bool   // 10
	Comment   *string // 14: profile bio
	AvatarURL *string // 20: project extension
}

func (m *UserState) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Session)
	b = putUint32(b, 2, m.Actor)
	b = putString(b, 3, m.Name)
	b = putUint32(b, 4, m.UserID)
	b = putUint32(b, 5, m.ChannelID)
	b = putBool(b, 6, m.Mute)
	b = putBool(b, 7, m.Deaf)
	b = putBool(b, 9, m.SelfMute)
	b = putBool(b, 10, m.SelfDeaf)
	b = putString(b, 14, m.Comment)
	b = putString(b, 20, m.AvatarURL)
	return b
}

func (m *UserState) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Session)
		case 2:
			b, err = getUint32(b, num, typ, &m.Actor)
		case 3:
			b, err = getString(b, num, typ, &m.Name)
		case 4:
			b, err = getUint32(b, num, typ, &m.UserID)
		case 5:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		case 6:
			b, err = getBool(b, num, typ, &m.Mute)
		case 7:
			b, err = getBool(b, num, typ, &m.Deaf)
		case 9:
			b, err = getBool(b, num, typ, &m.SelfMute)
		case 10:
			b, err = getBool(b, num, typ, &m.SelfDeaf)
		case 14:
			b, err = getString(b, num, typ, &m.Comment)
		case 20:
			b, err = getString(b, num, typ, &m.AvatarURL)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// BanEntry is one row of a BanList.
type BanEntry struct {
	Address []byte  // 1
	Mask    *uint32 // 2
	Name    *string // 3
	Hash    *string // 4
	Reason  *string // 5
}

func (m *BanEntry) Marshal() []byte {
	var b []byte
	b = putBytes(b, 1, m.Address)
	b = putUint32(b, 2, m.Mask)
	b = putString(b, 3, m.Name)
	b = putString(b, 4, m.Hash)
	b = putString(b, 5, m.Reason)
	return b
}

func (m *BanEntry) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getBytes(b, num, typ, &m.Address)
		case 2:
			b, err = getUint32(b, num, typ, &m.Mask)
		case 3:
			b, err = getString(b, num, typ, &m.Name)
		case 4:
			b, err = getString(b, num, typ, &m.Hash)
		case 5:
			b, err = getString(b, num, typ, &m.Reason)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// BanList queries or replaces the server ban list.
type BanList struct {
	Bans  []BanEntry // 1
	Query *bool      // 2
}

func (m *BanList) Marshal() []byte {
	var b []byte
	for i := range m.Bans {
		b = putMsg(b, 1, m.Bans[i].Marshal())
	}
	b = putBool(b, 2, m.Query)
	return b
}

func (m *BanList) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			var body []byte
			var ok bool
			body, b, ok, err = getMsg(b, num, typ)
			if err == nil && ok {
				var e BanEntry
				if err = e.Unmarshal(body); err == nil {
					m.Bans = append(m.Bans, e)
				}
			}
		case 2:
			b, err = getBool(b, num, typ, &m.Query)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// TextMessage is a chat message. Session/ChannelID/TreeID scope the
// broadcast; Timestamp is a project extension mirroring the stored creation
// time for history replay.
type TextMessage struct {
	Actor     *uint32  // 1
	Session   []uint32 // 2
	ChannelID []uint32 // 3
	TreeID    []uint32 // 4
	Message   *string  // 5
	Timestamp *uint64  // 6: project extension
}

func (m *TextMessage) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Actor)
	b = putRepUint32(b, 2, m.Session)
	b = putRepUint32(b, 3, m.ChannelID)
	b = putRepUint32(b, 4, m.TreeID)
	b = putString(b, 5, m.Message)
	b = putUint64(b, 6, m.Timestamp)
	return b
}

func (m *TextMessage) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Actor)
		case 2:
			b, err = getRepUint32(b, num, typ, &m.Session)
		case 3:
			b, err = getRepUint32(b, num, typ, &m.ChannelID)
		case 4:
			b, err = getRepUint32(b, num, typ, &m.TreeID)
		case 5:
			b, err = getString(b, num, typ, &m.Message)
		case 6:
			b, err = getUint64(b, num, typ, &m.Timestamp)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// PermissionDenied reports a refused operation.
type PermissionDenied struct {
	Permission *uint32 // 1
	ChannelID  *uint32 // 2
	Session    *uint32 // 3
	Reason     *string // 4
	Type       *uint32 // 5
	Name       *string // 6
}

func (m *PermissionDenied) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Permission)
	b = putUint32(b, 2, m.ChannelID)
	b = putUint32(b, 3, m.Session)
	b = putString(b, 4, m.Reason)
	b = putUint32(b, 5, m.Type)
	b = putString(b, 6, m.Name)
	return b
}

func (m *PermissionDenied) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Permission)
		case 2:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		case 3:
			b, err = getUint32(b, num, typ, &m.Session)
		case 4:
			b, err = getString(b, num, typ, &m.Reason)
		case 5:
			b, err = getUint32(b, num, typ, &m.Type)
		case 6:
			b, err = getString(b, num, typ, &m.Name)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ACL queries channel access control state. The server has no ACL model;
// the type exists so the frame is decodable.
type ACL struct {
	ChannelID   *uint32 // 1
	InheritACLs *bool   // 4
	Query       *bool   // 5
}

func (m *ACL) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.ChannelID)
	b = putBool(b, 4, m.InheritACLs)
	b = putBool(b, 5, m.Query)
	return b
}

func (m *ACL) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		case 4:
			b, err = getBool(b, num, typ, &m.InheritACLs)
		case 5:
			b, err = getBool(b, num, typ, &m.Query)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// QueryUsers resolves user ids to names and vice versa.
type QueryUsers struct {
	IDs   []uint32 // 1
	Names []string // 2
}

func (m *QueryUsers) Marshal() []byte {
	var b []byte
	b = putRepUint32(b, 1, m.IDs)
	b = putRepString(b, 2, m.Names)
	return b
}

func (m *QueryUsers) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getRepUint32(b, num, typ, &m.IDs)
		case 2:
			b, err = getRepString(b, num, typ, &m.Names)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CryptSetup exchanges UDP crypto state. Unused here (voice rides inside
// TLS) but kept decodable.
type CryptSetup struct {
	Key         []byte // 1
	ClientNonce []byte // 2
	ServerNonce []byte // 3
}

func (m *CryptSetup) Marshal() []byte {
	var b []byte
	b = putBytes(b, 1, m.Key)
	b = putBytes(b, 2, m.ClientNonce)
	b = putBytes(b, 3, m.ServerNonce)
	return b
}

func (m *CryptSetup) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getBytes(b, num, typ, &m.Key)
		case 2:
			b, err = getBytes(b, num, typ, &m.ClientNonce)
		case 3:
			b, err = getBytes(b, num, typ, &m.ServerNonce)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ContextActionModify registers or removes a client context menu action.
type ContextActionModify struct {
	Action    *string // 1
	Text      *string // 2
	Context   *uint32 // 3
	Operation *uint32 // 4
}

func (m *ContextActionModify) Marshal() []byte {
	var b []byte
	b = putString(b, 1, m.Action)
	b = putString(b, 2, m.Text)
	b = putUint32(b, 3, m.Context)
	b = putUint32(b, 4, m.Operation)
	return b
}

func (m *ContextActionModify) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getString(b, num, typ, &m.Action)
		case 2:
			b, err = getString(b, num, typ, &m.Text)
		case 3:
			b, err = getUint32(b, num, typ, &m.Context)
		case 4:
			b, err = getUint32(b, num, typ, &m.Operation)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ContextAction fires a previously registered context action.
type ContextAction struct {
	Session   *uint32 // 1
	ChannelID *uint32 // 2
	Action    *string // 3
}

func (m *ContextAction) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Session)
	b = putUint32(b, 2, m.ChannelID)
	b = putString(b, 3, m.Action)
	return b
}

func (m *ContextAction) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Session)
		case 2:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		case 3:
			b, err = getString(b, num, typ, &m.Action)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UserListUser is one row of a UserList.
type UserListUser struct {
	UserID *uint32 // 1
	Name   *string // 2
}

func (m *UserListUser) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.UserID)
	b = putString(b, 2, m.Name)
	return b
}

func (m *UserListUser) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.UserID)
		case 2:
			b, err = getString(b, num, typ, &m.Name)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UserList enumerates registered users.
type UserList struct {
	Users []UserListUser // 1
}

func (m *UserList) Marshal() []byte {
	var b []byte
	for i := range m.Users {
		b = putMsg(b, 1, m.Users[i].Marshal())
	}
	return b
}

func (m *UserList) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			var body []byte
			var ok bool
			body, b, ok, err = getMsg(b, num, typ)
			if err == nil && ok {
				var u UserListUser
				if err = u.Unmarshal(body); err == nil {
					m.Users = append(m.Users, u)
				}
			}
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// VoiceTargetTarget is one target of a whisper/shout registration.
type VoiceTargetTarget struct {
	Session   []uint32 // 1
	ChannelID *uint32  // 2
	Group     *string  // 3
	Links     *bool    // 4
	Children  *bool    // 5
}

func (m *VoiceTargetTarget) Marshal() []byte {
	var b []byte
	b = putRepUint32(b, 1, m.Session)
	b = putUint32(b, 2, m.ChannelID)
	b = putString(b, 3, m.Group)
	b = putBool(b, 4, m.Links)
	b = putBool(b, 5, m.Children)
	return b
}

func (m *VoiceTargetTarget) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getRepUint32(b, num, typ, &m.Session)
		case 2:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		case 3:
			b, err = getString(b, num, typ, &m.Group)
		case 4:
			b, err = getBool(b, num, typ, &m.Links)
		case 5:
			b, err = getBool(b, num, typ, &m.Children)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// VoiceTarget registers a whisper/shout target slot.
type VoiceTarget struct {
	ID      *uint32             // 1
	Targets []VoiceTargetTarget // 2
}

func (m *VoiceTarget) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.ID)
	for i := range m.Targets {
		b = putMsg(b, 2, m.Targets[i].Marshal())
	}
	return b
}

func (m *VoiceTarget) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.ID)
		case 2:
			var body []byte
			var ok bool
			body, b, ok, err = getMsg(b, num, typ)
			if err == nil && ok {
				var t VoiceTargetTarget
				if err = t.Unmarshal(body); err == nil {
					m.Targets = append(m.Targets, t)
				}
			}
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// PermissionQuery asks for the client's permissions in a channel.
type PermissionQuery struct {
	ChannelID   *uint32 // 1
	Permissions *uint32 // 2
	Flush       *bool   // 3
}

func (m *PermissionQuery) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.ChannelID)
	b = putUint32(b, 2, m.Permissions)
	b = putBool(b, 3, m.Flush)
	return b
}

func (m *PermissionQuery) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.ChannelID)
		case 2:
			b, err = getUint32(b, num, typ, &m.Permissions)
		case 3:
			b, err = getBool(b, num, typ, &m.Flush)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CodecVersion negotiates audio codecs; opaque to this server.
type CodecVersion struct {
	Alpha       *int32 // 1
	Beta        *int32 // 2
	PreferAlpha *bool  // 3
	Opus        *bool  // 4
}

func (m *CodecVersion) Marshal() []byte {
	var b []byte
	b = putInt32(b, 1, m.Alpha)
	b = putInt32(b, 2, m.Beta)
	b = putBool(b, 3, m.PreferAlpha)
	b = putBool(b, 4, m.Opus)
	return b
}

func (m *CodecVersion) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getInt32(b, num, typ, &m.Alpha)
		case 2:
			b, err = getInt32(b, num, typ, &m.Beta)
		case 3:
			b, err = getBool(b, num, typ, &m.PreferAlpha)
		case 4:
			b, err = getBool(b, num, typ, &m.Opus)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UserStats requests or carries per-session connection statistics.
type UserStats struct {
	Session   *uint32 // 1
	StatsOnly *bool   // 2
}

func (m *UserStats) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Session)
	b = putBool(b, 2, m.StatsOnly)
	return b
}

func (m *UserStats) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Session)
		case 2:
			b, err = getBool(b, num, typ, &m.StatsOnly)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RequestBlob asks for deferred large payloads (textures, comments,
// channel descriptions).
type RequestBlob struct {
	SessionTexture     []uint32 // 1
	SessionComment     []uint32 // 2
	ChannelDescription []uint32 // 3
}

func (m *RequestBlob) Marshal() []byte {
	var b []byte
	b = putRepUint32(b, 1, m.SessionTexture)
	b = putRepUint32(b, 2, m.SessionComment)
	b = putRepUint32(b, 3, m.ChannelDescription)
	return b
}

func (m *RequestBlob) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getRepUint32(b, num, typ, &m.SessionTexture)
		case 2:
			b, err = getRepUint32(b, num, typ, &m.SessionComment)
		case 3:
			b, err = getRepUint32(b, num, typ, &m.ChannelDescription)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ServerConfig advertises server limits to the client.
type ServerConfig struct {
	MaxBandwidth       *uint32 // 1
	WelcomeText        *string // 2
	AllowHTML          *bool   // 3
	MessageLength      *uint32 // 4
	ImageMessageLength *uint32 // 5
	MaxUsers           *uint32 // 6
}

func (m *ServerConfig) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.MaxBandwidth)
	b = putString(b, 2, m.WelcomeText)
	b = putBool(b, 3, m.AllowHTML)
	b = putUint32(b, 4, m.MessageLength)
	b = putUint32(b, 5, m.ImageMessageLength)
	b = putUint32(b, 6, m.MaxUsers)
	return b
}

func (m *ServerConfig) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.MaxBandwidth)
		case 2:
			b, err = getString(b, num, typ, &m.WelcomeText)
		case 3:
			b, err = getBool(b, num, typ, &m.AllowHTML)
		case 4:
			b, err = getUint32(b, num, typ, &m.MessageLength)
		case 5:
			b, err = getUint32(b, num, typ, &m.ImageMessageLength)
		case 6:
			b, err = getUint32(b, num, typ, &m.MaxUsers)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SuggestConfig recommends client settings.
type SuggestConfig struct {
	Version    *uint32 // 1
	Positional *bool   // 2
	PushToTalk *bool   // 3
}

func (m *SuggestConfig) Marshal() []byte {
	var b []byte
	b = putUint32(b, 1, m.Version)
	b = putBool(b, 2, m.Positional)
	b = putBool(b, 3, m.PushToTalk)
	return b
}

func (m *SuggestConfig) Unmarshal(b []byte) error {
	var err error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			b, err = getUint32(b, num, typ, &m.Version)
		case 2:
			b, err = getBool(b, num, typ, &m.Positional)
		case 3:
			b, err = getBool(b, num, typ, &m.PushToTalk)
		default:
			b, err = skipField(b, num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
