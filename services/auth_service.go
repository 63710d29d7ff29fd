package services

import (
	"errors"
	"log"
	"time"

	"github.com/Kalhara-JA/care4u-V7-sub001/models"
	"github.com/Kalhara-JA/care4u-V7-sub001/utils"
)

// AuthService is the passwordless sign-in state machine. It composes the OTP
// lifecycle, the token issuer and the identity store, and decides which class
// of session token a user gets from the current, server-side view of their
// profile — never from anything the client claims.
type AuthService struct {
	store    AuthStore
	otp      *OTPService
	tokens   *utils.TokenIssuer
	uploader ImageUploader // optional, profile pictures only
}

func NewAuthService(store AuthStore, otp *OTPService, tokens *utils.TokenIssuer, uploader ImageUploader) *AuthService {
	return &AuthService{store: store, otp: otp, tokens: tokens, uploader: uploader}
}

type SendOTPResult struct {
	UserID uint `json:"user_id"`
}

// SendOTP creates an email-only user on first contact and always issues a
// fresh code, superseding any prior one. The response never reveals whether
// the email was already known.
func (s *AuthService) SendOTP(email string) (*SendOTPResult, *Error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("sendOTP: lookup failed for %s: %v", email, err)
			return nil, internalErr()
		}
		user, err = s.store.CreateUser(email)
		if err != nil {
			log.Printf("sendOTP: create failed for %s: %v", email, err)
			return nil, internalErr()
		}
	}

	if err := s.otp.Issue(email); err != nil {
		log.Printf("sendOTP: issue failed for %s: %v", email, err)
		return nil, internalErr()
	}
	return &SendOTPResult{UserID: user.ID}, nil
}

// ResendOTP is SendOTP for an email we must already know.
func (s *AuthService) ResendOTP(email string) (*SendOTPResult, *Error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errOf(KindUserNotFound, "user not found")
		}
		log.Printf("resendOTP: lookup failed for %s: %v", email, err)
		return nil, internalErr()
	}

	if err := s.otp.Issue(email); err != nil {
		log.Printf("resendOTP: issue failed for %s: %v", email, err)
		return nil, internalErr()
	}
	return &SendOTPResult{UserID: user.ID}, nil
}

type VerifyOTPResult struct {
	Token      string
	User       *models.User
	IsNewUser  bool
	RedirectTo string
}

// VerifyOTP redeems a code and mints a session. Completeness is computed
// fresh here: a complete profile earns the long-lived token and goes home,
// anything else gets the short-lived token and is sent to finish the profile.
func (s *AuthService) VerifyOTP(email, code string) (*VerifyOTPResult, *Error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errOf(KindUserNotFound, "user not found")
		}
		log.Printf("verifyOTP: lookup failed for %s: %v", email, err)
		return nil, internalErr()
	}

	ok, err := s.otp.Verify(email, code)
	if err != nil {
		log.Printf("verifyOTP: verification failed for %s: %v", email, err)
		return nil, internalErr()
	}
	if !ok {
		return nil, errOf(KindInvalidOrExpiredOTP, "invalid or expired code")
	}

	complete := user.IsProfileComplete()
	token, err := s.tokens.Issue(user.ID, user.Email, complete)
	if err != nil {
		log.Printf("verifyOTP: token mint failed for %s: %v", email, err)
		return nil, internalErr()
	}

	if complete {
		return &VerifyOTPResult{
			Token:      token,
			User:       user,
			IsNewUser:  false,
			RedirectTo: "home",
		}, nil
	}
	return &VerifyOTPResult{
		Token:      token,
		User:       user,
		IsNewUser:  !user.HasProfileData(),
		RedirectTo: "complete-profile",
	}, nil
}

type CreateProfileInput struct {
	FirstName              string  `json:"first_name" binding:"required"`
	LastName               string  `json:"last_name" binding:"required"`
	ContactNumber          string  `json:"contact_number" binding:"required"`
	BirthDate              string  `json:"birth_date" binding:"required"` // YYYY-MM-DD
	Gender                 string  `json:"gender" binding:"required"`
	HeightCm               float64 `json:"height" binding:"required"`
	WeightKg               float64 `json:"weight" binding:"required"`
	EmergencyContactName   string  `json:"emergency_contact_name" binding:"required"`
	EmergencyContactNumber string  `json:"emergency_contact_number" binding:"required"`
	DietaryPreference      string  `json:"dietary_preference"`
	CalorieIntakeGoal      float64 `json:"calorie_intake_goal"`
	CalorieBurnGoal        float64 `json:"calorie_burn_goal"`
}

type CreateProfileResult struct {
	Token   string
	Profile *models.User
}

// CreateProfile is a one-time operation: once a profile is complete it can
// only be changed through UpdateProfile. On success the caller gets the
// long-lived token right away.
func (s *AuthService) CreateProfile(userID uint, in CreateProfileInput) (*CreateProfileResult, *Error) {
	user, err := s.store.GetProfile(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errOf(KindUserNotFound, "user not found")
		}
		log.Printf("createProfile: lookup failed for %d: %v", userID, err)
		return nil, internalErr()
	}

	if user.IsProfileComplete() {
		return nil, errOf(KindProfileAlreadyComplete, "profile already completed")
	}

	if in.HeightCm <= 0 || in.WeightKg <= 0 {
		return nil, errOf(KindValidationFailed, "height and weight must be positive")
	}
	if in.CalorieIntakeGoal < 0 || in.CalorieBurnGoal < 0 {
		return nil, errOf(KindValidationFailed, "calorie goals must be positive")
	}
	birthDate, perr := time.Parse("2006-01-02", in.BirthDate)
	if perr != nil {
		return nil, errOf(KindValidationFailed, "birth_date must be YYYY-MM-DD")
	}

	bmi, berr := utils.CalculateBMI(in.HeightCm, in.WeightKg)
	if berr != nil {
		return nil, errOf(KindValidationFailed, berr.Error())
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.ContactNumber = in.ContactNumber
	user.BirthDate = &birthDate
	user.Gender = in.Gender
	user.HeightCm = in.HeightCm
	user.WeightKg = in.WeightKg
	user.BMI = bmi
	user.EmergencyContactName = in.EmergencyContactName
	user.EmergencyContactNumber = in.EmergencyContactNumber
	user.DietaryPreference = in.DietaryPreference
	user.CalorieIntakeGoal = in.CalorieIntakeGoal
	user.CalorieBurnGoal = in.CalorieBurnGoal
	user.ProfileComplete = user.IsProfileComplete()

	if err := s.store.UpsertProfile(user); err != nil {
		log.Printf("createProfile: save failed for %d: %v", userID, err)
		return nil, internalErr()
	}

	token, err := s.tokens.Issue(user.ID, user.Email, true)
	if err != nil {
		log.Printf("createProfile: token mint failed for %d: %v", userID, err)
		return nil, internalErr()
	}
	return &CreateProfileResult{Token: token, Profile: user}, nil
}

type UpdateProfileInput struct {
	FirstName              string   `json:"first_name"`
	LastName               string   `json:"last_name"`
	ContactNumber          string   `json:"contact_number"`
	BirthDate              string   `json:"birth_date"` // YYYY-MM-DD
	Gender                 string   `json:"gender"`
	HeightCm               *float64 `json:"height"`
	WeightKg               *float64 `json:"weight"`
	EmergencyContactName   string   `json:"emergency_contact_name"`
	EmergencyContactNumber string   `json:"emergency_contact_number"`
	DietaryPreference      string   `json:"dietary_preference"`
	CalorieIntakeGoal      *float64 `json:"calorie_intake_goal"`
	CalorieBurnGoal        *float64 `json:"calorie_burn_goal"`
	ProfilePicture         string   `json:"profile_picture"` // base64 data URI
}

// UpdateProfile merges only the supplied fields. BMI is recomputed only when
// height and weight arrive in the same call; a lone height or weight change
// leaves the stored BMI as-is (known limitation, kept deliberately). No new
// token is minted — the caller already holds a session.
func (s *AuthService) UpdateProfile(userID uint, in UpdateProfileInput) (*models.User, *Error) {
	user, err := s.store.GetProfile(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errOf(KindUserNotFound, "user not found")
		}
		log.Printf("updateProfile: lookup failed for %d: %v", userID, err)
		return nil, internalErr()
	}

	if !user.HasProfileData() {
		return nil, errOf(KindProfileNotFound, "profile not found")
	}

	if in.HeightCm != nil && *in.HeightCm <= 0 {
		return nil, errOf(KindValidationFailed, "height must be positive")
	}
	if in.WeightKg != nil && *in.WeightKg <= 0 {
		return nil, errOf(KindValidationFailed, "weight must be positive")
	}
	if in.CalorieIntakeGoal != nil && *in.CalorieIntakeGoal <= 0 {
		return nil, errOf(KindValidationFailed, "calorie intake goal must be positive")
	}
	if in.CalorieBurnGoal != nil && *in.CalorieBurnGoal <= 0 {
		return nil, errOf(KindValidationFailed, "calorie burn goal must be positive")
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.ContactNumber != "" {
		user.ContactNumber = in.ContactNumber
	}
	if in.BirthDate != "" {
		birthDate, perr := time.Parse("2006-01-02", in.BirthDate)
		if perr != nil {
			return nil, errOf(KindValidationFailed, "birth_date must be YYYY-MM-DD")
		}
		user.BirthDate = &birthDate
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.HeightCm != nil {
		user.HeightCm = *in.HeightCm
	}
	if in.WeightKg != nil {
		user.WeightKg = *in.WeightKg
	}
	if in.EmergencyContactName != "" {
		user.EmergencyContactName = in.EmergencyContactName
	}
	if in.EmergencyContactNumber != "" {
		user.EmergencyContactNumber = in.EmergencyContactNumber
	}
	if in.DietaryPreference != "" {
		user.DietaryPreference = in.DietaryPreference
	}
	if in.CalorieIntakeGoal != nil {
		user.CalorieIntakeGoal = *in.CalorieIntakeGoal
	}
	if in.CalorieBurnGoal != nil {
		user.CalorieBurnGoal = *in.CalorieBurnGoal
	}

	if in.HeightCm != nil && in.WeightKg != nil {
		bmi, berr := utils.CalculateBMI(*in.HeightCm, *in.WeightKg)
		if berr != nil {
			return nil, errOf(KindValidationFailed, berr.Error())
		}
		user.BMI = bmi
	}

	if in.ProfilePicture != "" && s.uploader != nil {
		url, uerr := s.uploader.UploadBase64Image(in.ProfilePicture, user.Email)
		if uerr != nil {
			log.Printf("updateProfile: picture upload failed for %d: %v", userID, uerr)
			return nil, internalErr()
		}
		user.ProfilePicture = url
	}

	user.ProfileComplete = user.IsProfileComplete()

	if err := s.store.UpsertProfile(user); err != nil {
		log.Printf("updateProfile: save failed for %d: %v", userID, err)
		return nil, internalErr()
	}
	return user, nil
}

// GetProfile returns the stored profile for an authenticated user.
func (s *AuthService) GetProfile(userID uint) (*models.User, *Error) {
	user, err := s.store.GetProfile(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errOf(KindUserNotFound, "user not found")
		}
		log.Printf("getProfile: lookup failed for %d: %v", userID, err)
		return nil, internalErr()
	}
	return user, nil
}

type CheckAuthResult struct {
	User       *models.User
	HasProfile bool
}

// CheckAuth validates a presented token and reports live profile state. This
// is how a client holding a still-valid temporary token discovers it should
// re-authenticate for the long-lived one after completing its profile.
func (s *AuthService) CheckAuth(token string) (*CheckAuthResult, *Error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, errOf(KindInvalidToken, "invalid token")
	}

	user, err := s.store.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errOf(KindUserNotFound, "user not found")
		}
		log.Printf("checkAuth: lookup failed for %d: %v", claims.UserID, err)
		return nil, internalErr()
	}

	return &CheckAuthResult{User: user, HasProfile: user.IsProfileComplete()}, nil
}
