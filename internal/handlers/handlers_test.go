package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"partshelf/internal/catalog"
	"partshelf/internal/labels"
	"partshelf/internal/store"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) (*gin.Engine, *Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	images, err := store.NewImages(filepath.Join(dir, "images"))
	if err != nil {
		t.Fatal("Failed to create image store:", err)
	}
	suppliers, err := catalog.NewSupplierManager(filepath.Join(dir, "suppliers.json"), images, "")
	if err != nil {
		t.Fatal("Failed to create supplier manager:", err)
	}
	categories, err := catalog.NewCategoryManager(filepath.Join(dir, "categories.json"), images)
	if err != nil {
		t.Fatal("Failed to create category manager:", err)
	}
	items, err := catalog.NewItemManager(filepath.Join(dir, "items.json"), images, categories)
	if err != nil {
		t.Fatal("Failed to create item manager:", err)
	}
	templates, err := labels.NewTemplateManager(filepath.Join(dir, "qr_templates.json"))
	if err != nil {
		t.Fatal("Failed to create template manager:", err)
	}
	settings, err := labels.NewSettingsManager(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatal("Failed to create settings manager:", err)
	}

	svc := &Services{
		Suppliers:  suppliers,
		Categories: categories,
		Items:      items,
		Templates:  templates,
		Settings:   settings,
		Images:     images,
	}
	r := gin.New()
	SetupRoutes(r, svc)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateItemEndpoint(t *testing.T) {
	r, svc := setupRouter(t)

	hinges, err := svc.Categories.AddCategory("Hinges", "Acme")
	if err != nil {
		t.Fatal("Failed to add category:", err)
	}
	item := svc.Items.NewItem("H100", "", 1)
	if err := svc.Categories.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}
	if err := svc.Items.AddItem(item); err != nil {
		t.Fatal("Failed to register item:", err)
	}

	w := doJSON(t, r, http.MethodPut, "/api/items/1", `{"description": "Concealed hinge", "default_order_quantity": 25}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	updated, err := svc.Items.Get(item.ID)
	if err != nil {
		t.Fatal("Failed to get item:", err)
	}
	if updated.Description != "Concealed hinge" || updated.DefaultOrderQuantity != 25 {
		t.Errorf("Unexpected fields after update: %q, %d", updated.Description, updated.DefaultOrderQuantity)
	}
	if updated.ModelNumber != "H100" {
		t.Errorf("Expected untouched model number, got %q", updated.ModelNumber)
	}

	if w := doJSON(t, r, http.MethodPut, "/api/items/1", `{"model_number": ""}`); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank model number, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, "/api/items/999", `{"description": "x"}`); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown item, got %d", w.Code)
	}
}

func uploadImage(t *testing.T, r *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal("Failed to build upload:", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal("Failed to build upload:", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSupplierImageUploadEndpoint(t *testing.T) {
	r, svc := setupRouter(t)

	w := uploadImage(t, r, "/api/suppliers/Richelieu/image", "logo.png", []byte("richelieu-logo"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	richelieu, err := svc.Suppliers.Get("Richelieu")
	if err != nil {
		t.Fatal("Failed to get supplier:", err)
	}
	if filepath.Dir(richelieu.ImagePath) != svc.Images.Dir() {
		t.Errorf("Expected logo under the managed directory, got %q", richelieu.ImagePath)
	}
	data, err := os.ReadFile(richelieu.ImagePath)
	if err != nil || string(data) != "richelieu-logo" {
		t.Errorf("Uploaded content mismatch: %q (%v)", data, err)
	}

	// A second upload with the same client-side filename lands in its own
	// managed file and replaces the first.
	w = uploadImage(t, r, "/api/suppliers/Marathon/image", "logo.png", []byte("marathon-logo"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	marathon, _ := svc.Suppliers.Get("Marathon")
	if marathon.ImagePath == richelieu.ImagePath {
		t.Error("Expected each upload to get its own managed file")
	}
	data, err = os.ReadFile(marathon.ImagePath)
	if err != nil || string(data) != "marathon-logo" {
		t.Errorf("Uploaded content mismatch: %q (%v)", data, err)
	}
}
