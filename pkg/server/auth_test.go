package server

import (
	"testing"

	"github.com/NicolasHaas/govox/pkg/crypto"
	"github.com/NicolasHaas/govox/pkg/datastore"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

func TestAuthenticateAutoRegisters(t *testing.T) {
	st := datastore.NewMemory()

	user, reject, err := authenticate(st, &pb.Authenticate{
		Username: pb.String("alice"),
		Password: pb.String("pw"),
	})
	if err != nil || reject != nil {
		t.Fatalf("authenticate: user=%v reject=%v err=%v", user, reject, err)
	}
	if user.Username != "alice" {
		t.Fatalf("username %q", user.Username)
	}

	stored, err := st.GetUserByUsername("alice")
	if err != nil || stored == nil {
		t.Fatalf("user not stored: %v %v", stored, err)
	}
	if ok, _ := crypto.VerifyPassword("pw", stored.PasswordHash); !ok {
		t.Fatal("stored hash does not verify the registration password")
	}
}

func TestAuthenticateExistingUser(t *testing.T) {
	st := datastore.NewMemory()
	hash, err := crypto.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := st.CreateUser("bob", hash); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	user, reject, err := authenticate(st, &pb.Authenticate{
		Username: pb.String("bob"),
		Password: pb.String("secret"),
	})
	if err != nil || reject != nil || user == nil {
		t.Fatalf("correct password rejected: user=%v reject=%v err=%v", user, reject, err)
	}

	user, reject, err = authenticate(st, &pb.Authenticate{
		Username: pb.String("bob"),
		Password: pb.String("nope"),
	})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user != nil || reject == nil {
		t.Fatalf("wrong password accepted: user=%v reject=%v", user, reject)
	}
	if *reject.Type != pb.RejectWrongUserPW || *reject.Reason != "Invalid password" {
		t.Fatalf("reject %#v", reject)
	}
}

func TestAuthenticateDefaults(t *testing.T) {
	st := datastore.NewMemory()

	// Absent username falls back to "Unknown", absent password to "".
	user, reject, err := authenticate(st, &pb.Authenticate{})
	if err != nil || reject != nil {
		t.Fatalf("authenticate: reject=%v err=%v", reject, err)
	}
	if user.Username != "Unknown" {
		t.Fatalf("username %q, want Unknown", user.Username)
	}

	// The same anonymous client authenticates again with the empty password.
	user, reject, err = authenticate(st, &pb.Authenticate{})
	if err != nil || reject != nil || user == nil {
		t.Fatalf("repeat anonymous auth failed: reject=%v err=%v", reject, err)
	}
}
