package service

import (
	"context"
	"net/http"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

func TestRegisterLoginAndCreateBill(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	anon := env.clientAs(t, "")

	session, err := anon.Register(ctx, &api.RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if session.Principal == "" || session.Token == "" {
		t.Fatalf("expected principal and token, got %+v", session)
	}

	_, err = anon.Register(ctx, &api.RegisterRequest{Email: "alice@example.com", DisplayName: "Alice", Password: "password123"})
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("expected AlreadyExists, got %v", err)
	}

	_, err = anon.Register(ctx, &api.RegisterRequest{Email: "bob@example.com", DisplayName: "Bob", Password: "short"})
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument for weak password, got %v", err)
	}

	_, err = anon.Login(ctx, &api.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated, got %v", err)
	}

	login, err := anon.Login(ctx, &api.LoginRequest{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Principal != session.Principal {
		t.Errorf("expected principal %s, got %s", session.Principal, login.Principal)
	}

	client := NewClient(http.DefaultClient, env.server.URL)
	client.Token = login.Token
	created, err := client.CreateBill(ctx, &api.CreateBillRequest{
		Creator:      login.Principal,
		Total:        50,
		Participants: []string{login.Principal, "B"},
	})
	if err != nil {
		t.Fatalf("CreateBill as registered account failed: %v", err)
	}
	if created.Share != 25 {
		t.Errorf("expected share 25, got %d", created.Share)
	}
}
