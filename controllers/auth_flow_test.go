package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/config"
	"github.com/Kalhara-JA/care4u-V7-sub001/controllers"
	"github.com/Kalhara-JA/care4u-V7-sub001/repository"
	"github.com/Kalhara-JA/care4u-V7-sub001/routes"
	"github.com/Kalhara-JA/care4u-V7-sub001/services"
	"github.com/Kalhara-JA/care4u-V7-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type captureNotifier struct {
	codes []string
}

func (n *captureNotifier) Send(email, code string) error {
	n.codes = append(n.codes, code)
	return nil
}

func (n *captureNotifier) lastCode() string {
	return n.codes[len(n.codes)-1]
}

func newTestRouter(t *testing.T) (*gin.Engine, *captureNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	store := repository.NewAuthRepository(db)
	tokens := utils.NewTokenIssuer("test-secret", 15*time.Minute, 72*time.Hour)
	notifier := &captureNotifier{}
	otp := services.NewOTPService(store, notifier, time.Minute)
	auth := services.NewAuthService(store, otp, tokens, nil)

	hub := services.NewRealtimeHub()
	alerts := services.NewAlertBus(db, hub, nil)

	r := routes.SetupRouter(routes.Deps{
		Tokens:      tokens,
		Auth:        controllers.NewAuthController(auth),
		User:        controllers.NewUserController(auth),
		Meal:        controllers.NewMealController(services.NewMealService(db), nil),
		Exercise:    controllers.NewExerciseController(services.NewExerciseService(db)),
		Sugar:       controllers.NewSugarController(services.NewSugarService(db, alerts)),
		Appointment: controllers.NewAppointmentController(services.NewAppointmentService(db)),
		Alert:       controllers.NewAlertController(alerts),
		Device:      controllers.NewDeviceController(nil),
		Realtime:    controllers.NewRealtimeController(hub),
	})
	return r, notifier
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("%s %s: response is not JSON: %s", method, path, w.Body.String())
	}
	return w.Code, parsed
}

func profilePayload() map[string]any {
	return map[string]any{
		"first_name":               "Amaya",
		"last_name":                "Perera",
		"contact_number":           "+94771234567",
		"birth_date":               "1990-04-12",
		"gender":                   "female",
		"height":                   170,
		"weight":                   70,
		"emergency_contact_name":   "Nimal Perera",
		"emergency_contact_number": "+94770000000",
	}
}

func TestSignupFlowOverHTTP(t *testing.T) {
	r, notifier := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodPost, "/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	if code != http.StatusOK || body["success"] != true {
		t.Fatalf("send-otp: %d %v", code, body)
	}

	code, body = doJSON(t, r, http.MethodPost, "/auth/verify-otp", "", map[string]any{
		"email": "a@x.com",
		"code":  notifier.lastCode(),
	})
	if code != http.StatusOK {
		t.Fatalf("verify-otp: %d %v", code, body)
	}
	if body["redirect_to"] != "complete-profile" || body["is_new_user"] != true {
		t.Fatalf("new user routing wrong: %v", body)
	}
	tempToken, _ := body["token"].(string)
	if tempToken == "" {
		t.Fatal("verify-otp returned no token")
	}

	code, body = doJSON(t, r, http.MethodPost, "/user/profile", tempToken, profilePayload())
	if code != http.StatusCreated {
		t.Fatalf("create profile: %d %v", code, body)
	}
	permToken, _ := body["token"].(string)
	if permToken == "" {
		t.Fatal("create profile returned no token")
	}
	profile, _ := body["profile"].(map[string]any)
	if profile["bmi"] != 24.2 {
		t.Fatalf("bmi = %v, want 24.2", profile["bmi"])
	}

	// the old temporary token now reports a complete profile
	code, body = doJSON(t, r, http.MethodGet, "/auth/check", tempToken, nil)
	if code != http.StatusOK || body["has_profile"] != true {
		t.Fatalf("check: %d %v", code, body)
	}

	// a second create is rejected without clobbering anything
	code, body = doJSON(t, r, http.MethodPost, "/user/profile", permToken, profilePayload())
	if code != http.StatusConflict {
		t.Fatalf("second create should conflict: %d %v", code, body)
	}

	code, body = doJSON(t, r, http.MethodGet, "/user/profile", permToken, nil)
	if code != http.StatusOK {
		t.Fatalf("get profile: %d %v", code, body)
	}
	profile, _ = body["profile"].(map[string]any)
	if profile["first_name"] != "Amaya" {
		t.Fatalf("profile did not persist: %v", profile)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodGet, "/user/profile", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d %v", code, body)
	}

	code, body = doJSON(t, r, http.MethodGet, "/user/profile", "bogus-token", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bogus token, got %d %v", code, body)
	}
}

func TestSugarAlertOverHTTP(t *testing.T) {
	r, notifier := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/auth/send-otp", "", map[string]any{"email": "a@x.com"})
	_, body := doJSON(t, r, http.MethodPost, "/auth/verify-otp", "", map[string]any{
		"email": "a@x.com",
		"code":  notifier.lastCode(),
	})
	token, _ := body["token"].(string)

	code, body := doJSON(t, r, http.MethodPost, "/sugar", token, map[string]any{
		"level_mg_dl": 250,
		"context":     "fasting",
		"measured_at": time.Now().UTC().Format(time.RFC3339),
	})
	if code != http.StatusCreated {
		t.Fatalf("sugar log: %d %v", code, body)
	}

	code, body = doJSON(t, r, http.MethodGet, "/alerts", token, nil)
	if code != http.StatusOK {
		t.Fatalf("alerts: %d %v", code, body)
	}
	alerts, _ := body["alerts"].([]any)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert for the out-of-range reading, got %d", len(alerts))
	}
}
