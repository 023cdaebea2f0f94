package server

import (
	"fmt"

	"github.com/NicolasHaas/govox/pkg/crypto"
	"github.com/NicolasHaas/govox/pkg/datastore"
	"github.com/NicolasHaas/govox/pkg/model"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

// authenticate verifies a credential pair against the store, registering
// the user on first sight. It returns the user record on success, a Reject
// to send before closing on a credential mismatch, or an error for store
// failures (fatal to the connection, no Reject sent).
//
// An absent username authenticates as "Unknown"; an absent password as the
// empty string. Usernames are not normalized; the store's uniqueness
// constraint is the only collision guard.
func authenticate(st datastore.DataStore, auth *pb.Authenticate) (*model.User, *pb.Reject, error) {
	username := "Unknown"
	if auth.Username != nil && *auth.Username != "" {
		username = *auth.Username
	}
	var password string
	if auth.Password != nil {
		password = *auth.Password
	}

	user, err := st.GetUserByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("server: auth lookup: %w", err)
	}

	if user != nil {
		ok, err := crypto.VerifyPassword(password, user.PasswordHash)
		if err != nil {
			return nil, nil, fmt.Errorf("server: auth verify: %w", err)
		}
		if !ok {
			return nil, &pb.Reject{
				Type:   pb.Uint32(pb.RejectWrongUserPW),
				Reason: pb.String("Invalid password"),
			}, nil
		}
		return user, nil, nil
	}

	// Auto-registration: unknown users are created with the offered password.
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("server: auth hash: %w", err)
	}
	user, err = st.CreateUser(username, hash)
	if err != nil {
		return nil, nil, fmt.Errorf("server: auth register: %w", err)
	}
	return user, nil, nil
}
