package employee_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Instanvi/ABM-api/internal/app/features/employee"
	"github.com/Instanvi/ABM-api/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*employee.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return employee.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func doAdd(t *testing.T, h *employee.Handler, body string) map[string]any {
	t.Helper()
	req := httptest.NewRequest("POST", "/employee/add", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Add(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Add returned status %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding add response: %v", err)
	}
	return resp
}

func TestAdd_Valid(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `[{
		"first_name": "Jane",
		"last_name": "Doe",
		"job_title": "CTO",
		"contact": {"phone": "+237650000001", "email": "jane@acme.test"}
	}]`
	resp := doAdd(t, h, body)
	if resp["message"] != "All Employees added successfully" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestAdd_ScalarPhoneNormalized(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `[{
		"first_name": "Jane",
		"last_name": "Doe",
		"job_title": "CTO",
		"contact": {"phone": "+237650000001"}
	}]`
	resp := doAdd(t, h, body)
	id := resp["successful_results"].([]any)[0].(string)

	req := httptest.NewRequest("GET", "/employee/search?id="+id, nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	doc := got["data"].([]any)[0].(map[string]any)
	contact := doc["contact"].(map[string]any)
	phones := contact["phone"].([]any)
	if len(phones) != 1 || phones[0] != "+237650000001" {
		t.Errorf("phone = %v, want single-element list", contact["phone"])
	}
	if contact["email"] != "" {
		t.Errorf("email = %v, want empty default", contact["email"])
	}
}

func TestAdd_UnknownCompanyFails(t *testing.T) {
	h, _ := newTestHandler(t)

	body := fmt.Sprintf(`[{
		"first_name": "Jane",
		"last_name": "Doe",
		"job_title": "CTO",
		"contact": {"phone": "+237650000001"},
		"company_id": %q
	}]`, primitive.NewObjectID().Hex())
	resp := doAdd(t, h, body)
	if resp["message"] != "No employees were added" {
		t.Errorf("message = %v", resp["message"])
	}
	entry := resp["failed_results"].([]any)[0].(map[string]any)
	if entry["error"] != "Company not found" {
		t.Errorf("failure error = %v", entry["error"])
	}
}

func TestAdd_MissingContactFails(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `[{"first_name": "Jane", "last_name": "Doe", "job_title": "CTO"}]`
	resp := doAdd(t, h, body)
	if resp["message"] != "No employees were added" {
		t.Errorf("message = %v", resp["message"])
	}
	entry := resp["failed_results"].([]any)[0].(map[string]any)
	if !strings.Contains(entry["error"].(string), "contact") {
		t.Errorf("failure error = %v", entry["error"])
	}
}

func TestAdd_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := doAdd(t, h, `[{"first_name": "Jane"}]`)
	entry := resp["failed_results"].([]any)[0].(map[string]any)
	if !strings.Contains(entry["error"].(string), "last_name") {
		t.Errorf("failure error = %v", entry["error"])
	}
}

func TestSearch_ByJobTitle(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	contact := fx.CreateContact(ctx, "jane@acme.test")
	fx.CreateEmployee(ctx, "Jane", "Doe", "Chief Technology Officer", contact.ID, primitive.NilObjectID)

	req := httptest.NewRequest("GET", "/employee/search?job_title=technology", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	doc := got["data"].([]any)[0].(map[string]any)
	if _, ok := doc["contact"].(map[string]any); !ok {
		t.Errorf("contact was not resolved: %v", doc["contact"])
	}
}

func TestSearch_ByCompany(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)
	fx.CreateEmployee(ctx, "Jane", "Doe", "CTO", primitive.NilObjectID, co.ID)
	fx.CreateEmployee(ctx, "John", "Smith", "CFO", primitive.NilObjectID, co.ID)

	req := httptest.NewRequest("GET", "/employee/search?company_id="+co.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	if len(got["data"].([]any)) != 2 {
		t.Errorf("data has %d entries, want 2", len(got["data"].([]any)))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/employee/search?first_name=Nobody", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDelete_BatchPartial(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := fx.CreateEmployee(ctx, "Jane", "Doe", "CTO", primitive.NilObjectID, primitive.NilObjectID)

	body := fmt.Sprintf(`[%q, %q]`, emp.ID.Hex(), primitive.NewObjectID().Hex())
	req := httptest.NewRequest("DELETE", "/employee/delete", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding delete response: %v", err)
	}
	if n := got["failed_count"].(float64); n != 1 {
		t.Errorf("failed_count = %v, want 1", n)
	}
	if n := got["successful_count"].(float64); n != 1 {
		t.Errorf("successful_count = %v, want 1", n)
	}
}

func TestUpdate_NestedContact(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	contact := fx.CreateContact(ctx, "old@acme.test", "+237650000001")
	emp := fx.CreateEmployee(ctx, "Jane", "Doe", "CTO", contact.ID, primitive.NilObjectID)

	body := `{"job_title": "CEO", "contact": {"phone": ["+237650000009"], "email": "new@acme.test"}}`
	req := httptest.NewRequest("PUT", "/employee/update?id="+emp.ID.Hex(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/employee/search?id="+emp.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	h.Search(rec, req)
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	doc := got["data"].([]any)[0].(map[string]any)
	if doc["job_title"] != "CEO" {
		t.Errorf("job_title = %v", doc["job_title"])
	}
	resolved := doc["contact"].(map[string]any)
	if resolved["email"] != "new@acme.test" {
		t.Errorf("contact email = %v", resolved["email"])
	}
}

func TestUpdate_DanglingContact(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := fx.CreateEmployee(ctx, "Jane", "Doe", "CTO", primitive.NewObjectID(), primitive.NilObjectID)

	body := `{"contact": {"phone": ["+237650000009"], "email": "new@acme.test"}}`
	req := httptest.NewRequest("PUT", "/employee/update?id="+emp.ID.Hex(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Associated contact not found") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestUpdate_IncompleteContact(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	emp := fx.CreateEmployee(ctx, "Jane", "Doe", "CTO", primitive.NilObjectID, primitive.NilObjectID)

	body := `{"contact": {"email": "only@acme.test"}}`
	req := httptest.NewRequest("PUT", "/employee/update?id="+emp.ID.Hex(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
