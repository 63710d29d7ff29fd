package services

import (
	"testing"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/utils"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testTempTTL = 15 * time.Minute
	testPermTTL = 72 * time.Hour
)

type authFixture struct {
	store    *fakeStore
	notifier *fakeNotifier
	auth     *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := newFakeStore()
	notifier := &fakeNotifier{}
	tokens := utils.NewTokenIssuer("test-secret", testTempTTL, testPermTTL)
	otp := NewOTPService(store, notifier, time.Minute)
	return &authFixture{
		store:    store,
		notifier: notifier,
		auth:     NewAuthService(store, otp, tokens, nil),
	}
}

// tokenTTL reads the exp claim without verifying; tests only care which
// lifetime class was minted.
func tokenTTL(t *testing.T, token string) time.Duration {
	t.Helper()
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("could not parse token: %v", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("token has no exp claim: %v", err)
	}
	return time.Until(exp.Time)
}

func assertTemporary(t *testing.T, token string) {
	t.Helper()
	if ttl := tokenTTL(t, token); ttl > testTempTTL+time.Minute {
		t.Fatalf("expected a temporary token, got ttl %v", ttl)
	}
}

func assertPermanent(t *testing.T, token string) {
	t.Helper()
	if ttl := tokenTTL(t, token); ttl < testPermTTL-time.Hour {
		t.Fatalf("expected a permanent token, got ttl %v", ttl)
	}
}

func validProfile() CreateProfileInput {
	return CreateProfileInput{
		FirstName:              "Amaya",
		LastName:               "Perera",
		ContactNumber:          "+94771234567",
		BirthDate:              "1990-04-12",
		Gender:                 "female",
		HeightCm:               170,
		WeightKg:               70,
		EmergencyContactName:   "Nimal Perera",
		EmergencyContactNumber: "+94770000000",
		DietaryPreference:      "vegetarian",
		CalorieIntakeGoal:      2000,
		CalorieBurnGoal:        400,
	}
}

func TestSendOTPCreatesUserOnFirstContact(t *testing.T) {
	fx := newAuthFixture(t)

	res, serr := fx.auth.SendOTP("a@x.com")
	if serr != nil {
		t.Fatalf("sendOTP failed: %v", serr)
	}
	if res.UserID == 0 {
		t.Fatal("expected a user id")
	}

	// second send reuses the same user and supersedes the code
	res2, serr := fx.auth.SendOTP("a@x.com")
	if serr != nil {
		t.Fatalf("second sendOTP failed: %v", serr)
	}
	if res2.UserID != res.UserID {
		t.Fatalf("user id changed between sends: %d vs %d", res.UserID, res2.UserID)
	}
	if len(fx.notifier.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(fx.notifier.sent))
	}
}

func TestResendOTPRequiresKnownUser(t *testing.T) {
	fx := newAuthFixture(t)

	_, serr := fx.auth.ResendOTP("ghost@x.com")
	if serr == nil || serr.Kind != KindUserNotFound {
		t.Fatalf("expected UserNotFound, got %+v", serr)
	}

	if _, serr := fx.auth.SendOTP("a@x.com"); serr != nil {
		t.Fatalf("sendOTP failed: %v", serr)
	}
	if _, serr := fx.auth.ResendOTP("a@x.com"); serr != nil {
		t.Fatalf("resendOTP failed for known user: %v", serr)
	}
}

func TestVerifyOTPUnknownUserAndBadCode(t *testing.T) {
	fx := newAuthFixture(t)

	_, serr := fx.auth.VerifyOTP("ghost@x.com", "123456")
	if serr == nil || serr.Kind != KindUserNotFound {
		t.Fatalf("expected UserNotFound, got %+v", serr)
	}

	if _, serr := fx.auth.SendOTP("a@x.com"); serr != nil {
		t.Fatalf("sendOTP failed: %v", serr)
	}
	_, serr = fx.auth.VerifyOTP("a@x.com", "999999")
	if serr == nil || serr.Kind != KindInvalidOrExpiredOTP {
		t.Fatalf("expected InvalidOrExpiredOTP, got %+v", serr)
	}
}

func TestVerifyOTPIncompleteProfileGetsTemporaryToken(t *testing.T) {
	fx := newAuthFixture(t)

	if _, serr := fx.auth.SendOTP("a@x.com"); serr != nil {
		t.Fatalf("sendOTP failed: %v", serr)
	}

	res, serr := fx.auth.VerifyOTP("a@x.com", fx.notifier.lastCode())
	if serr != nil {
		t.Fatalf("verifyOTP failed: %v", serr)
	}
	if res.RedirectTo != "complete-profile" {
		t.Fatalf("redirect = %q, want complete-profile", res.RedirectTo)
	}
	if !res.IsNewUser {
		t.Fatal("first-time user should be flagged new")
	}
	assertTemporary(t, res.Token)
}

func TestVerifyOTPCompleteProfileGetsPermanentToken(t *testing.T) {
	fx := newAuthFixture(t)

	if _, serr := fx.auth.SendOTP("a@x.com"); serr != nil {
		t.Fatalf("sendOTP failed: %v", serr)
	}
	first, serr := fx.auth.VerifyOTP("a@x.com", fx.notifier.lastCode())
	if serr != nil {
		t.Fatalf("verifyOTP failed: %v", serr)
	}
	if _, serr := fx.auth.CreateProfile(first.User.ID, validProfile()); serr != nil {
		t.Fatalf("createProfile failed: %v", serr)
	}

	if _, serr := fx.auth.ResendOTP("a@x.com"); serr != nil {
		t.Fatalf("resendOTP failed: %v", serr)
	}
	res, serr := fx.auth.VerifyOTP("a@x.com", fx.notifier.lastCode())
	if serr != nil {
		t.Fatalf("second verifyOTP failed: %v", serr)
	}
	if res.RedirectTo != "home" {
		t.Fatalf("redirect = %q, want home", res.RedirectTo)
	}
	if res.IsNewUser {
		t.Fatal("returning user must not be flagged new")
	}
	assertPermanent(t, res.Token)
}

func TestVerifyOTPGatesOnEachRequiredField(t *testing.T) {
	breakers := map[string]func(*CreateProfileInput){
		"first_name":               func(p *CreateProfileInput) { p.FirstName = "" },
		"last_name":                func(p *CreateProfileInput) { p.LastName = "" },
		"contact_number":           func(p *CreateProfileInput) { p.ContactNumber = "" },
		"gender":                   func(p *CreateProfileInput) { p.Gender = "" },
		"emergency_contact_name":   func(p *CreateProfileInput) { p.EmergencyContactName = "" },
		"emergency_contact_number": func(p *CreateProfileInput) { p.EmergencyContactNumber = "" },
	}

	for field, wreck := range breakers {
		t.Run(field, func(t *testing.T) {
			fx := newAuthFixture(t)
			if _, serr := fx.auth.SendOTP("a@x.com"); serr != nil {
				t.Fatalf("sendOTP failed: %v", serr)
			}
			first, serr := fx.auth.VerifyOTP("a@x.com", fx.notifier.lastCode())
			if serr != nil {
				t.Fatalf("verifyOTP failed: %v", serr)
			}

			// a partially filled profile is still incomplete
			in := validProfile()
			wreck(&in)
			if _, serr := fx.auth.CreateProfile(first.User.ID, in); serr != nil {
				t.Fatalf("createProfile failed: %v", serr)
			}

			if _, serr := fx.auth.ResendOTP("a@x.com"); serr != nil {
				t.Fatalf("resendOTP failed: %v", serr)
			}
			res, serr := fx.auth.VerifyOTP("a@x.com", fx.notifier.lastCode())
			if serr != nil {
				t.Fatalf("verifyOTP failed: %v", serr)
			}
			if res.RedirectTo != "complete-profile" {
				t.Fatalf("missing %s: redirect = %q, want complete-profile", field, res.RedirectTo)
			}
			assertTemporary(t, res.Token)
		})
	}
}

func TestCreateProfileComputesBMI(t *testing.T) {
	fx := newAuthFixture(t)
	user, _ := fx.store.CreateUser("a@x.com")

	res, serr := fx.auth.CreateProfile(user.ID, validProfile())
	if serr != nil {
		t.Fatalf("createProfile failed: %v", serr)
	}
	// 70 / 1.70^2 = 24.22… -> 24.2
	if res.Profile.BMI != 24.2 {
		t.Fatalf("BMI = %v, want 24.2", res.Profile.BMI)
	}
	assertPermanent(t, res.Token)
}

func TestCreateProfileRejectedOnceComplete(t *testing.T) {
	fx := newAuthFixture(t)
	user, _ := fx.store.CreateUser("a@x.com")

	if _, serr := fx.auth.CreateProfile(user.ID, validProfile()); serr != nil {
		t.Fatalf("createProfile failed: %v", serr)
	}

	second := validProfile()
	second.FirstName = "Overwritten"
	_, serr := fx.auth.CreateProfile(user.ID, second)
	if serr == nil || serr.Kind != KindProfileAlreadyComplete {
		t.Fatalf("expected ProfileAlreadyComplete, got %+v", serr)
	}

	stored, _ := fx.store.GetProfile(user.ID)
	if stored.FirstName != "Amaya" {
		t.Fatalf("rejected create must not mutate the profile, got first name %q", stored.FirstName)
	}
}

func TestCreateProfileValidatesNumbers(t *testing.T) {
	fx := newAuthFixture(t)
	user, _ := fx.store.CreateUser("a@x.com")

	in := validProfile()
	in.HeightCm = 0
	if _, serr := fx.auth.CreateProfile(user.ID, in); serr == nil || serr.Kind != KindValidationFailed {
		t.Fatalf("expected ValidationFailed for zero height, got %+v", serr)
	}

	in = validProfile()
	in.WeightKg = -5
	if _, serr := fx.auth.CreateProfile(user.ID, in); serr == nil || serr.Kind != KindValidationFailed {
		t.Fatalf("expected ValidationFailed for negative weight, got %+v", serr)
	}

	in = validProfile()
	in.BirthDate = "12-04-1990"
	if _, serr := fx.auth.CreateProfile(user.ID, in); serr == nil || serr.Kind != KindValidationFailed {
		t.Fatalf("expected ValidationFailed for bad birth date, got %+v", serr)
	}
}

func TestUpdateProfileRequiresExistingProfile(t *testing.T) {
	fx := newAuthFixture(t)
	user, _ := fx.store.CreateUser("a@x.com")

	name := "Amaya"
	_, serr := fx.auth.UpdateProfile(user.ID, UpdateProfileInput{FirstName: name})
	if serr == nil || serr.Kind != KindProfileNotFound {
		t.Fatalf("expected ProfileNotFound, got %+v", serr)
	}
}

func TestUpdateProfilePartialMergeAndBMI(t *testing.T) {
	fx := newAuthFixture(t)
	user, _ := fx.store.CreateUser("a@x.com")
	if _, serr := fx.auth.CreateProfile(user.ID, validProfile()); serr != nil {
		t.Fatalf("createProfile failed: %v", serr)
	}

	// lone weight change: field updates, BMI deliberately untouched
	w := 80.0
	updated, serr := fx.auth.UpdateProfile(user.ID, UpdateProfileInput{WeightKg: &w})
	if serr != nil {
		t.Fatalf("updateProfile failed: %v", serr)
	}
	if updated.WeightKg != 80 {
		t.Fatalf("weight = %v, want 80", updated.WeightKg)
	}
	if updated.BMI != 24.2 {
		t.Fatalf("BMI must not change on a lone weight update, got %v", updated.BMI)
	}
	if updated.FirstName != "Amaya" {
		t.Fatalf("untouched fields must survive the merge, got %q", updated.FirstName)
	}

	// height+weight together: BMI recomputed (80 / 1.60^2 = 31.25 -> 31.3)
	h, w2 := 160.0, 80.0
	updated, serr = fx.auth.UpdateProfile(user.ID, UpdateProfileInput{HeightCm: &h, WeightKg: &w2})
	if serr != nil {
		t.Fatalf("updateProfile failed: %v", serr)
	}
	if updated.BMI != 31.3 {
		t.Fatalf("BMI = %v, want 31.3", updated.BMI)
	}

	// positive-number validation on present fields
	bad := -1.0
	if _, serr := fx.auth.UpdateProfile(user.ID, UpdateProfileInput{HeightCm: &bad}); serr == nil || serr.Kind != KindValidationFailed {
		t.Fatalf("expected ValidationFailed, got %+v", serr)
	}
}

func TestCheckAuthReflectsLiveProfileState(t *testing.T) {
	fx := newAuthFixture(t)

	if _, serr := fx.auth.SendOTP("a@x.com"); serr != nil {
		t.Fatalf("sendOTP failed: %v", serr)
	}
	res, serr := fx.auth.VerifyOTP("a@x.com", fx.notifier.lastCode())
	if serr != nil {
		t.Fatalf("verifyOTP failed: %v", serr)
	}
	tempToken := res.Token

	check, serr := fx.auth.CheckAuth(tempToken)
	if serr != nil {
		t.Fatalf("checkAuth failed: %v", serr)
	}
	if check.HasProfile {
		t.Fatal("hasProfile should be false before the profile exists")
	}

	if _, serr := fx.auth.CreateProfile(res.User.ID, validProfile()); serr != nil {
		t.Fatalf("createProfile failed: %v", serr)
	}

	// same temporary token, but the live profile state has moved on
	check, serr = fx.auth.CheckAuth(tempToken)
	if serr != nil {
		t.Fatalf("checkAuth failed after profile creation: %v", serr)
	}
	if !check.HasProfile {
		t.Fatal("hasProfile must reflect the store, not the token claims")
	}
}

func TestCheckAuthRejectsGarbage(t *testing.T) {
	fx := newAuthFixture(t)

	_, serr := fx.auth.CheckAuth("not-a-token")
	if serr == nil || serr.Kind != KindInvalidToken {
		t.Fatalf("expected InvalidToken, got %+v", serr)
	}
}

func TestStorageFailuresAreMasked(t *testing.T) {
	fx := newAuthFixture(t)
	fx.store.failAll = true

	_, serr := fx.auth.SendOTP("a@x.com")
	if serr == nil || serr.Kind != KindStorageFailure {
		t.Fatalf("expected StorageFailure, got %+v", serr)
	}
	if serr.Message != "something went wrong, please try again" {
		t.Fatalf("internal detail leaked: %q", serr.Message)
	}
}

func TestEndToEndNewUserFlow(t *testing.T) {
	fx := newAuthFixture(t)

	send, serr := fx.auth.SendOTP("a@x.com")
	if serr != nil {
		t.Fatalf("sendOTP failed: %v", serr)
	}

	code := fx.notifier.lastCode()
	verify, serr := fx.auth.VerifyOTP("a@x.com", code)
	if serr != nil {
		t.Fatalf("verifyOTP failed: %v", serr)
	}
	if verify.User.ID != send.UserID {
		t.Fatalf("verify returned user %d, send created %d", verify.User.ID, send.UserID)
	}
	if !verify.IsNewUser || verify.RedirectTo != "complete-profile" {
		t.Fatalf("new user should be sent to complete-profile, got new=%v redirect=%q",
			verify.IsNewUser, verify.RedirectTo)
	}
	assertTemporary(t, verify.Token)

	created, serr := fx.auth.CreateProfile(send.UserID, validProfile())
	if serr != nil {
		t.Fatalf("createProfile failed: %v", serr)
	}
	assertPermanent(t, created.Token)
	if !created.Profile.IsProfileComplete() {
		t.Fatal("profile should be complete after creation")
	}
}
