package handlers

import (
	"net/http"
	"testing"

	"github.com/mfadhilr/jobboard_be/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	app, gdb := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Carol",
		"email":    "Carol@Example.com",
		"password": "password123",
		"role":     "freelancer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%v)", resp.StatusCode, body)
	}

	data := body["data"].(map[string]interface{})
	if data["token"] == "" {
		t.Error("Expected a token in the register response")
	}
	user := data["user"].(map[string]interface{})
	if user["email"] != "carol@example.com" {
		t.Errorf("Expected lowercased email, got %v", user["email"])
	}
	if user["role"] != "freelancer" {
		t.Errorf("Expected role freelancer, got %v", user["role"])
	}

	var stored models.User
	if err := gdb.First(&stored, "email = ?", "carol@example.com").Error; err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Password == "password123" {
		t.Error("Password stored in plaintext")
	}

	// login with the same credentials
	resp, body = doJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "carol@example.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	token := body["data"].(map[string]interface{})["token"].(string)

	// the issued token works on protected routes
	resp, body = doJSON(t, app, "GET", "/api/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 on /me, got %d", resp.StatusCode)
	}
	me := body["data"].(map[string]interface{})
	if me["email"] != "carol@example.com" {
		t.Errorf("Expected own identity from /me, got %v", me["email"])
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "",
		"email":    "not-an-email",
		"password": "123",
		"role":     "admin", // never self-served
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	errs := body["errors"].(map[string]interface{})
	for _, field := range []string{"name", "email", "password", "role"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("Expected violation for %q, got %v", field, errs)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, gdb := setupApp(t)
	createUser(t, gdb, "Taken", "taken@example.com", models.RoleClient)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Imposter",
		"email":    "taken@example.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	if _, ok := body["errors"].(map[string]interface{})["email"]; !ok {
		t.Error("Expected an email violation")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app, gdb := setupApp(t)
	createUser(t, gdb, "Carol", "carol@example.com", models.RoleClient)

	resp, _ := doJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "carol@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unknown email, got %d", resp.StatusCode)
	}
}

func TestGetCategories(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, "GET", "/api/categories", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	cats := body["data"].([]interface{})
	if len(cats) != len(models.Categories) {
		t.Errorf("Expected %d categories, got %d", len(models.Categories), len(cats))
	}
}
