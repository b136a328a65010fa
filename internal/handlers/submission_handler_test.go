package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkswipe/backend/internal/models"
	"github.com/linkswipe/backend/internal/services"
)

type fakePhotoStore struct {
	url     string
	err     error
	uploads int
}

func (f *fakePhotoStore) Upload(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var testDomains = []string{"facebook.com", "instagram.com", "x.com", "twitter.com", "tiktok.com", "youtube.com"}

func submissionForm(t *testing.T, fields map[string]string, withPhoto bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withPhoto {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photoFile"; filename="me.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake jpeg bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"name":        "Jordan",
		"email":       "jordan@example.com",
		"description": "Travel photography",
		"link":        "https://instagram.com/jordan",
		"platform":    "Instagram",
	}
}

func TestSubmitProfile_Success(t *testing.T) {
	store := services.NewProfileService()
	photos := &fakePhotoStore{url: "https://cdn.example.com/profiles/me.jpg_1"}
	h := NewSubmissionHandler(store, photos, nil, testDomains, "https://pay.example.com/l/xziod", 10)

	body, contentType := submissionForm(t, validFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-profile", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.SubmitProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	pending, err := store.ListByStatus(context.Background(), models.StatusPendingPayment)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Jordan", pending[0].Name)
	assert.Equal(t, "jordan@example.com", pending[0].Email)
	assert.Equal(t, photos.url, pending[0].PhotoURL)
	assert.False(t, pending[0].Timestamp.IsZero())
}

func TestSubmitProfile_MissingRequiredField(t *testing.T) {
	for _, field := range []string{"name", "email", "description", "link", "platform"} {
		t.Run(field, func(t *testing.T) {
			store := services.NewProfileService()
			h := NewSubmissionHandler(store, &fakePhotoStore{url: "unused"}, nil, testDomains, "", 10)

			fields := validFields()
			delete(fields, field)
			body, contentType := submissionForm(t, fields, true)
			req := httptest.NewRequest(http.MethodPost, "/api/submit-profile", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			h.SubmitProfile(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			pending, _ := store.ListByStatus(context.Background(), models.StatusPendingPayment)
			assert.Empty(t, pending)
		})
	}
}

func TestSubmitProfile_MissingPhoto(t *testing.T) {
	store := services.NewProfileService()
	h := NewSubmissionHandler(store, &fakePhotoStore{url: "unused"}, nil, testDomains, "", 10)

	body, contentType := submissionForm(t, validFields(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-profile", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.SubmitProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	pending, _ := store.ListByStatus(context.Background(), models.StatusPendingPayment)
	assert.Empty(t, pending)
}

func TestSubmitProfile_DisallowedPlatformLink(t *testing.T) {
	store := services.NewProfileService()
	photos := &fakePhotoStore{url: "unused"}
	h := NewSubmissionHandler(store, photos, nil, testDomains, "", 10)

	fields := validFields()
	fields["link"] = "https://myblog.example.com/jordan"
	body, contentType := submissionForm(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-profile", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.SubmitProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, photos.uploads)
	pending, _ := store.ListByStatus(context.Background(), models.StatusPendingPayment)
	assert.Empty(t, pending)
}

func TestSubmitProfile_UploadFailureWritesNothing(t *testing.T) {
	store := services.NewProfileService()
	photos := &fakePhotoStore{err: errors.New("bucket unavailable")}
	h := NewSubmissionHandler(store, photos, nil, testDomains, "", 10)

	body, contentType := submissionForm(t, validFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/submit-profile", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.SubmitProfile(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	pending, _ := store.ListByStatus(context.Background(), models.StatusPendingPayment)
	assert.Empty(t, pending)
}
