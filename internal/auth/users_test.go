package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	if err := s.Add(ctx, &User{Email: "a@x.com", Name: "A", Role: RoleUser}); err != nil {
		t.Fatalf("first Add error: %v", err)
	}
	err := s.Add(ctx, &User{Email: "A@X.COM ", Name: "A2", Role: RoleUser})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Add = %v, want ErrEmailTaken", err)
	}
}

func TestMemoryStoreSecondAdminRefused(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	if err := s.AddAdmin(ctx, &User{Email: "one@x.com", Name: "One"}); err != nil {
		t.Fatalf("first AddAdmin error: %v", err)
	}
	err := s.AddAdmin(ctx, &User{Email: "two@x.com", Name: "Two"})
	if !errors.Is(err, ErrAdminExists) {
		t.Fatalf("second AddAdmin = %v, want ErrAdminExists", err)
	}
	if n, _ := s.CountAdmins(ctx); n != 1 {
		t.Fatalf("CountAdmins = %d, want 1", n)
	}
}

// Any number of concurrent setup attempts yields exactly one admin record.
func TestMemoryStoreConcurrentAdminSetup(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.AddAdmin(ctx, &User{
				Email: "admin" + string(rune('a'+i)) + "@x.com",
				Name:  "Admin",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrAdminExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}
	if n, _ := s.CountAdmins(ctx); n != 1 {
		t.Fatalf("CountAdmins = %d, want 1", n)
	}
}

func TestMemoryStoreFindAndUpdatePassword(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	u := &User{Email: "a@x.com", Name: "A", PassHash: "h1", Role: RoleUser}
	if err := s.Add(ctx, u); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	got, err := s.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Email != "a@x.com" {
		t.Errorf("email = %q", got.Email)
	}

	if err := s.UpdatePassword(ctx, u.ID, "h2"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
	got, _ = s.FindByEmail(ctx, "a@x.com")
	if got.PassHash != "h2" {
		t.Errorf("PassHash = %q, want h2", got.PassHash)
	}

	if _, err := s.FindByEmail(ctx, "missing@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindByEmail missing = %v, want ErrUserNotFound", err)
	}
	if err := s.UpdatePassword(ctx, "nope", "h3"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdatePassword missing = %v, want ErrUserNotFound", err)
	}
}
