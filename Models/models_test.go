package Models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatusLocalizedName(t *testing.T) {
	assert.Equal(t, "Under Review", StatusUnderReview.LocalizedName("en"))
	assert.Equal(t, "در حال بررسی", StatusUnderReview.LocalizedName("fa"))
	assert.Equal(t, "قید بررسی", StatusUnderReview.LocalizedName("AR"))
	assert.Equal(t, "on hold", RequestStatus("on_hold").LocalizedName("en"))
	assert.Equal(t, "purple", StatusTravelPlanning.Label().Color)
}

func TestSpecialtyName(t *testing.T) {
	assert.Equal(t, "Cardiology", SpecialtyName("cardiology", "en"))
	assert.Equal(t, "دندان‌پزشکی", SpecialtyName("dentistry", "fa"))
	assert.Equal(t, "unknown-id", SpecialtyName("unknown-id", "en"))
}

func TestMedicalRequest_Specialties(t *testing.T) {
	var request MedicalRequest
	assert.Empty(t, request.SpecialtyIDs())

	require.NoError(t, request.SetSpecialties([]string{"cardiology", "other"}))
	assert.JSONEq(t, `["cardiology","other"]`, string(request.Specialties))
	assert.Equal(t, []string{"cardiology", "other"}, request.SpecialtyIDs())

	require.NoError(t, request.SetSpecialties(nil))
	assert.JSONEq(t, `[]`, string(request.Specialties))
}

func TestMedicalRequest_BeforeCreateDefaults(t *testing.T) {
	request := MedicalRequest{UserID: "u1"}
	require.NoError(t, request.BeforeCreate(nil))
	assert.NotEmpty(t, request.ID)
	assert.Equal(t, StatusNew, request.Status)
}

func TestUser_OTPLifecycle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var user User

	assert.False(t, user.HasValidOTP("123456", now))

	user.SetOTP("123456", now.Add(10*time.Minute))
	assert.True(t, user.HasValidOTP("123456", now))
	assert.False(t, user.HasValidOTP("654321", now))
	assert.False(t, user.HasValidOTP("123456", now.Add(10*time.Minute)), "expiry is exclusive")

	user.ClearOTP()
	assert.Nil(t, user.OTP)
	assert.Nil(t, user.OTPExpiry)
}

func TestUser_Password(t *testing.T) {
	user := User{FullName: "  Sara  ", WhatsApp: " +98 912 "}
	assert.Error(t, user.VerifyPassword("anything"), "no stored hash never verifies")

	require.NoError(t, user.SetPassword("s3cret"))
	assert.Equal(t, "Sara", user.FullName)
	assert.Equal(t, "+98 912", user.WhatsApp)
	assert.NoError(t, user.VerifyPassword("s3cret"))
	assert.Error(t, user.VerifyPassword("wrong"))

	user.PrepareGive()
	assert.Nil(t, user.Password)
}
