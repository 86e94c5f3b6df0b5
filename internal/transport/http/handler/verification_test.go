package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-email-otp/internal/application/verification"
	"github.com/go-email-otp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockVerificationSvc struct{ mock.Mock }

func (m *mockVerificationSvc) SendCode(ctx context.Context, req verification.SendCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockVerificationSvc) VerifyCode(ctx context.Context, req verification.VerifyCodeRequest) error {
	return m.Called(ctx, req).Error(0)
}

// --- helpers ---

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// --- SendCode ---

func TestSendCode_Success(t *testing.T) {
	svc := &mockVerificationSvc{}
	svc.On("SendCode", mock.Anything, verification.SendCodeRequest{Email: "a@x.com"}).Return(nil)
	h := NewVerificationHandler(svc, nil)

	env := decodeEnvelope(t, post(h.SendCode, `{"email":"a@x.com"}`))

	assert.True(t, env.OK)
	assert.Equal(t, "Verification code sent successfully.", env.Message)
	assert.Empty(t, env.Error)
	svc.AssertExpectations(t)
}

func TestSendCode_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", fmt.Errorf("x: %w", domain.ErrValidation), "Email is required."},
		{"delivery", fmt.Errorf("x: %w", domain.ErrDelivery), "Failed to send verification email."},
		{"unknown", errors.New("boom"), "Internal server error."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockVerificationSvc{}
			svc.On("SendCode", mock.Anything, mock.Anything).Return(tc.err)

			env := decodeEnvelope(t, post(NewVerificationHandler(svc, nil).SendCode, `{"email":"a@x.com"}`))

			assert.False(t, env.OK)
			assert.Equal(t, tc.want, env.Error)
		})
	}
}

func TestSendCode_MalformedBody_PassesEmptyEmail(t *testing.T) {
	svc := &mockVerificationSvc{}
	svc.On("SendCode", mock.Anything, verification.SendCodeRequest{}).
		Return(fmt.Errorf("x: %w", domain.ErrValidation))

	env := decodeEnvelope(t, post(NewVerificationHandler(svc, nil).SendCode, `{not json`))

	assert.False(t, env.OK)
	assert.Equal(t, "Email is required.", env.Error)
	svc.AssertExpectations(t)
}

// --- VerifyCode ---

func TestVerifyCode_Success(t *testing.T) {
	svc := &mockVerificationSvc{}
	svc.On("VerifyCode", mock.Anything, verification.VerifyCodeRequest{Email: "a@x.com", Code: "482913"}).Return(nil)

	env := decodeEnvelope(t, post(NewVerificationHandler(svc, nil).VerifyCode, `{"email":"a@x.com","code":"482913"}`))

	assert.True(t, env.OK)
	assert.Equal(t, "Email verified successfully!", env.Message)
	svc.AssertExpectations(t)
}

func TestVerifyCode_NumericCode(t *testing.T) {
	svc := &mockVerificationSvc{}
	svc.On("VerifyCode", mock.Anything, verification.VerifyCodeRequest{Email: "a@x.com", Code: "482913"}).Return(nil)

	env := decodeEnvelope(t, post(NewVerificationHandler(svc, nil).VerifyCode, `{"email":"a@x.com","code":482913}`))

	assert.True(t, env.OK)
	svc.AssertExpectations(t)
}

func TestVerifyCode_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", fmt.Errorf("x: %w", domain.ErrValidation), "Email and code are required."},
		{"not found", fmt.Errorf("x: %w", domain.ErrNotFound), "No verification code found. Please request a new one."},
		{"expired", fmt.Errorf("x: %w", domain.ErrExpired), "Verification code expired. Please request again."},
		{"mismatch", fmt.Errorf("x: %w", domain.ErrMismatch), "Invalid verification code."},
		{"unknown", errors.New("boom"), "Internal server error."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockVerificationSvc{}
			svc.On("VerifyCode", mock.Anything, mock.Anything).Return(tc.err)

			env := decodeEnvelope(t, post(NewVerificationHandler(svc, nil).VerifyCode, `{"email":"a@x.com","code":"1"}`))

			assert.False(t, env.OK)
			assert.Equal(t, tc.want, env.Error)
			assert.Empty(t, env.Message)
		})
	}
}

func TestVerifyCode_BoolCode_TreatedAsMissing(t *testing.T) {
	svc := &mockVerificationSvc{}
	svc.On("VerifyCode", mock.Anything, verification.VerifyCodeRequest{}).
		Return(fmt.Errorf("x: %w", domain.ErrValidation))

	env := decodeEnvelope(t, post(NewVerificationHandler(svc, nil).VerifyCode, `{"email":"a@x.com","code":true}`))

	assert.Equal(t, "Email and code are required.", env.Error)
	svc.AssertExpectations(t)
}

func TestVerifyCode_ZeroCode_TreatedAsMissing(t *testing.T) {
	svc := &mockVerificationSvc{}
	svc.On("VerifyCode", mock.Anything, verification.VerifyCodeRequest{Email: "a@x.com"}).
		Return(fmt.Errorf("x: %w", domain.ErrValidation))

	env := decodeEnvelope(t, post(NewVerificationHandler(svc, nil).VerifyCode, `{"email":"a@x.com","code":0}`))

	assert.False(t, env.OK)
	assert.Equal(t, "Email and code are required.", env.Error)
	svc.AssertExpectations(t)
}

func TestVerifyCode_UnknownError_LogsToInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	svc := &mockVerificationSvc{}
	svc.On("VerifyCode", mock.Anything, mock.Anything).Return(errors.New("store unavailable"))

	decodeEnvelope(t, post(NewVerificationHandler(svc, log).VerifyCode, `{"email":"a@x.com","code":"1"}`))

	assert.Contains(t, buf.String(), "verify code failed")
	assert.Contains(t, buf.String(), "store unavailable")
}

func TestSendCode_OversizedBody_LogsDecodeError(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := &mockVerificationSvc{}
	svc.On("SendCode", mock.Anything, verification.SendCodeRequest{}).
		Return(fmt.Errorf("x: %w", domain.ErrValidation))

	body := `{"email":"` + strings.Repeat("a", maxBodyBytes) + `@x.com"}`
	env := decodeEnvelope(t, post(NewVerificationHandler(svc, log).SendCode, body))

	assert.Equal(t, "Email is required.", env.Error)
	assert.Contains(t, buf.String(), "request body rejected")
	assert.Contains(t, buf.String(), "too large")
	svc.AssertExpectations(t)
}

// --- looseString ---

func TestLooseString(t *testing.T) {
	cases := map[string]string{
		`"482913"`:  "482913",
		`482913`:    "482913",
		`482913.0`:  "482913",
		`4.82913e5`: "482913",
		`482913e0`:  "482913",
		`482913.5`:  "482913.5",
		`0`:         "",
		`-0.0`:      "",
		`null`:      "",
		`"007"`:     "007",
		`"0"`:       "0",
	}
	for in, want := range cases {
		var s looseString
		require.NoError(t, json.Unmarshal([]byte(in), &s), in)
		assert.Equal(t, want, string(s), in)
	}

	var s looseString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

// --- Health ---

func TestRoot_PlainText(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler().Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "✅ Raizian Email Verification API is running.", rec.Body.String())
}
