package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestSuccessFieldsAreTopLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	SuccessFields(c, gin.H{"title": "T", "success": false})

	body := decode(t, rec)
	if rec.Code != http.StatusOK || body["success"] != true || body["title"] != "T" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, http.StatusBadRequest, "File is empty")

	body := decode(t, rec)
	if rec.Code != http.StatusBadRequest || body["success"] != false || body["message"] != "File is empty" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
}
