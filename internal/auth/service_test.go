package auth

import (
	"context"
	"errors"
	"testing"
)

func testService(t *testing.T, secret string) (*Service, UserRepository) {
	t.Helper()
	repo := NewUserRepository(setupTestDB(t))
	return NewService(repo, secret), repo
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc, repo := testService(t, testSecret)
	ctx := context.Background()

	user := &User{
		Name:            "Luis",
		PaternalSurname: "Hernández",
		MaternalSurname: "Cruz",
		Email:           "luis@example.com",
	}
	if err := svc.Register(ctx, user, "miContraseña"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Plaintext must not be what was persisted.
	stored, err := repo.GetByEmail(ctx, "luis@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if stored.PasswordHash == "miContraseña" {
		t.Error("password stored in plaintext")
	}

	token, err := svc.Login(ctx, "luis@example.com", "miContraseña")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := svc.Verify("Bearer " + token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims userId = %q, want %q", claims.UserID, user.ID)
	}
}

func TestService_RegisterMissingFields(t *testing.T) {
	svc, _ := testService(t, testSecret)

	err := svc.Register(context.Background(), &User{
		Name:  "NoSurnames",
		Email: "x@example.com",
	}, "password")
	if err == nil {
		t.Error("Register should reject missing required fields")
	}
}

func TestService_LoginUnknownEmail(t *testing.T) {
	svc, _ := testService(t, testSecret)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestService_LoginWrongPassword(t *testing.T) {
	svc, _ := testService(t, testSecret)
	ctx := context.Background()

	user := &User{
		Name:            "Eva",
		PaternalSurname: "Santos",
		MaternalSurname: "Mora",
		Email:           "eva@example.com",
	}
	if err := svc.Register(ctx, user, "rightPassword"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(ctx, "eva@example.com", "wrongPassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestService_LoginErrorShapeConstant(t *testing.T) {
	svc, _ := testService(t, testSecret)
	ctx := context.Background()

	user := &User{
		Name:            "Iris",
		PaternalSurname: "Vega",
		MaternalSurname: "Soto",
		Email:           "iris@example.com",
	}
	if err := svc.Register(ctx, user, "password1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, errUnknown := svc.Login(ctx, "ghost@example.com", "password1")
	_, errWrong := svc.Login(ctx, "iris@example.com", "password2")

	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestService_LoginNoSecret(t *testing.T) {
	svc, _ := testService(t, "")
	ctx := context.Background()

	user := &User{
		Name:            "Sam",
		PaternalSurname: "Ortiz",
		MaternalSurname: "Luna",
		Email:           "sam@example.com",
	}
	if err := svc.Register(ctx, user, "password"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(ctx, "sam@example.com", "password")
	if !errors.Is(err, ErrSecretMissing) {
		t.Errorf("error = %v, want ErrSecretMissing", err)
	}
}

func TestService_VerifyGarbage(t *testing.T) {
	svc, _ := testService(t, testSecret)

	if _, err := svc.Verify("Bearer not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}
