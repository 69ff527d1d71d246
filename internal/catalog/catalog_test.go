package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"partshelf/internal/store"
)

func setupManagers(t *testing.T) (*CategoryManager, *ItemManager, string) {
	t.Helper()
	dir := t.TempDir()

	images, err := store.NewImages(filepath.Join(dir, "images"))
	if err != nil {
		t.Fatal("Failed to create image store:", err)
	}
	cm, err := NewCategoryManager(filepath.Join(dir, "categories.json"), images)
	if err != nil {
		t.Fatal("Failed to create category manager:", err)
	}
	im, err := NewItemManager(filepath.Join(dir, "items.json"), images, cm)
	if err != nil {
		t.Fatal("Failed to create item manager:", err)
	}
	return cm, im, dir
}

func rootNames(roots []*Category) []string {
	names := make([]string, len(roots))
	for i, root := range roots {
		names[i] = root.Name
	}
	return names
}

func TestCategoriesBootstrapsUncategorized(t *testing.T) {
	cm, _, _ := setupManagers(t)

	roots := cm.Categories("Acme")
	if len(roots) != 1 {
		t.Fatalf("Expected 1 root category, got %v", rootNames(roots))
	}
	if roots[0].Name != UncategorizedName {
		t.Errorf("Expected %q, got %q", UncategorizedName, roots[0].Name)
	}
}

func TestAddCategory(t *testing.T) {
	cm, _, _ := setupManagers(t)

	if _, err := cm.AddCategory("Hinges", "Acme"); err != nil {
		t.Fatal("Failed to add category:", err)
	}

	roots := cm.Categories("Acme")
	if len(roots) != 2 || roots[0].Name != UncategorizedName || roots[1].Name != "Hinges" {
		t.Errorf("Unexpected root categories: %v", rootNames(roots))
	}

	_, err := cm.AddCategory("hinges", "acme")
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName for duplicate root, got %v", err)
	}

	if _, err := cm.AddCategory("Slides", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for blank supplier, got %v", err)
	}
	if _, err := cm.AddCategory("Slides", "Supplier"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for the placeholder supplier, got %v", err)
	}
}

func TestCaseInsensitiveSupplierResolution(t *testing.T) {
	cm, _, _ := setupManagers(t)

	if _, err := cm.AddCategory("Hinges", "Acme"); err != nil {
		t.Fatal("Failed to add category:", err)
	}
	if _, err := cm.AddCategory("Slides", "ACME"); err != nil {
		t.Fatal("Failed to add category:", err)
	}

	roots := cm.Categories("acme")
	if len(roots) != 3 {
		t.Errorf("Expected one forest for differently-cased supplier names, got %v", rootNames(roots))
	}
}

func TestRemoveCategoryRelocatesItems(t *testing.T) {
	cm, im, _ := setupManagers(t)

	hinges, err := cm.AddCategory("Hinges", "Acme")
	if err != nil {
		t.Fatal("Failed to add category:", err)
	}

	item := im.NewItem("H100", "Concealed hinge", 10)
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}
	if err := im.AddItem(item); err != nil {
		t.Fatal("Failed to register item:", err)
	}
	if item.Supplier != "Acme" {
		t.Errorf("Expected supplier to be denormalized, got %q", item.Supplier)
	}

	if err := cm.RemoveCategory(hinges); err != nil {
		t.Fatal("Failed to remove category:", err)
	}

	roots := cm.Categories("Acme")
	if len(roots) != 1 || roots[0].Name != UncategorizedName {
		t.Errorf("Expected only %q to remain, got %v", UncategorizedName, rootNames(roots))
	}
	uncat := roots[0]
	if len(uncat.Items()) != 1 || uncat.Items()[0].ID != item.ID {
		t.Error("Expected the orphaned item to land in the fallback category")
	}
	if item.Category() != uncat {
		t.Error("Expected the item to reference the fallback category")
	}
}

func TestRemoveCategoryReparentsSubcategories(t *testing.T) {
	cm, _, _ := setupManagers(t)

	parent, err := cm.AddCategory("Hardware", "Acme")
	if err != nil {
		t.Fatal("Failed to add category:", err)
	}
	mid, err := cm.AddSubCategory(parent, "Hinges")
	if err != nil {
		t.Fatal("Failed to add subcategory:", err)
	}
	leaf, err := cm.AddSubCategory(mid, "Concealed")
	if err != nil {
		t.Fatal("Failed to add subcategory:", err)
	}

	if err := cm.RemoveCategory(mid); err != nil {
		t.Fatal("Failed to remove category:", err)
	}
	if leaf.Parent() != parent {
		t.Error("Expected the grandchild to be re-parented to the removed node's parent")
	}

	// Removing a root promotes its children to root level.
	if err := cm.RemoveCategory(parent); err != nil {
		t.Fatal("Failed to remove root category:", err)
	}
	if leaf.Parent() != nil {
		t.Error("Expected the child of a removed root to become a root")
	}
	found := false
	for _, root := range cm.Categories("Acme") {
		if root == leaf {
			found = true
		}
	}
	if !found {
		t.Error("Expected the promoted child in the supplier's root list")
	}
}

func TestRemoveUncategorizedRefused(t *testing.T) {
	cm, _, _ := setupManagers(t)

	uncat := cm.Uncategorized("Acme")
	if err := cm.RemoveCategory(uncat); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation when removing the fallback category, got %v", err)
	}
}

func TestSupplierMismatchRedirectsToUncategorized(t *testing.T) {
	cm, im, _ := setupManagers(t)

	hinges, err := cm.AddCategory("Hinges", "Acme")
	if err != nil {
		t.Fatal("Failed to add category:", err)
	}

	item := im.NewItem("G1", "Globex widget", 1)
	item.Supplier = "Globex"
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}

	if len(hinges.Items()) != 0 {
		t.Error("Expected the mismatched item to be kept out of the target category")
	}
	if item.Category() == nil || item.Category().Name != UncategorizedName || item.Category().Supplier != "Globex" {
		t.Error("Expected the item in its own supplier's fallback category")
	}
}

func TestMoveCategoryAcrossSuppliers(t *testing.T) {
	cm, _, _ := setupManagers(t)

	acme, _ := cm.AddCategory("Hinges", "Acme")
	globex, _ := cm.AddCategory("Slides", "Globex")

	if err := cm.MoveCategory(acme, globex); !errors.Is(err, ErrCrossSupplier) {
		t.Errorf("Expected ErrCrossSupplier, got %v", err)
	}

	// The failed move must not drop the category from its forest.
	found := false
	for _, root := range cm.Categories("Acme") {
		if root == acme {
			found = true
		}
	}
	if !found {
		t.Error("Expected the category to stay registered after a refused move")
	}
}

func TestMoveCategoryToRootAndBack(t *testing.T) {
	cm, _, _ := setupManagers(t)

	parent, _ := cm.AddCategory("Hardware", "Acme")
	sub, err := cm.AddSubCategory(parent, "Hinges")
	if err != nil {
		t.Fatal("Failed to add subcategory:", err)
	}

	if err := cm.MoveCategory(sub, nil); err != nil {
		t.Fatal("Failed to promote subcategory:", err)
	}
	if sub.Parent() != nil {
		t.Error("Expected promoted category to have no parent")
	}

	if err := cm.MoveCategory(sub, parent); err != nil {
		t.Fatal("Failed to demote category:", err)
	}
	if sub.Parent() != parent {
		t.Error("Expected category back under its parent")
	}
	if err := cm.MoveCategory(parent, sub); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation when moving a category under its own subtree, got %v", err)
	}
}

func TestForestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.json")

	cm, err := NewCategoryManager(path, nil)
	if err != nil {
		t.Fatal("Failed to create category manager:", err)
	}
	root, _ := cm.AddCategory("Hardware", "Acme")
	mid, _ := cm.AddSubCategory(root, "Hinges")
	if _, err := cm.AddSubCategory(mid, "Concealed"); err != nil {
		t.Fatal("Failed to build tree:", err)
	}

	reloaded, err := NewCategoryManager(path, nil)
	if err != nil {
		t.Fatal("Failed to reload category manager:", err)
	}

	leaf, err := reloaded.FindByPath("Acme > Hardware > Hinges > Concealed")
	if err != nil {
		t.Fatal("Failed to resolve path after reload:", err)
	}
	if leaf.Parent() == nil || leaf.Parent().Name != "Hinges" {
		t.Error("Expected parent back-references to be reconstructed")
	}
	if leaf.Parent().Parent() == nil || leaf.Parent().Parent().Name != "Hardware" {
		t.Error("Expected the full parent chain to be reconstructed")
	}
	if leaf.Supplier != "Acme" {
		t.Errorf("Expected supplier stamped down the reloaded tree, got %q", leaf.Supplier)
	}
}

func TestItemIDSeededFromPersistedMax(t *testing.T) {
	cm, _, dir := setupManagers(t)

	path := filepath.Join(dir, "seeded_items.json")
	doc := `[
		{"id": 3, "model_number": "H300", "supplier": "Acme", "default_order_quantity": 1},
		{"id": 7, "model_number": "H700", "supplier": "Acme", "default_order_quantity": 1}
	]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal("Failed to write fixture:", err)
	}

	im, err := NewItemManager(path, nil, cm)
	if err != nil {
		t.Fatal("Failed to load items:", err)
	}
	if got := im.NewItem("H800", "", 1); got.ID != 8 {
		t.Errorf("Expected next id 8, got %d", got.ID)
	}
}

func TestItemsEnvelopeTolerated(t *testing.T) {
	cm, _, dir := setupManagers(t)

	path := filepath.Join(dir, "wrapped_items.json")
	doc := `{"$values": [{"id": 5, "model_number": "H500", "supplier": "Acme", "default_order_quantity": 2}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal("Failed to write fixture:", err)
	}

	im, err := NewItemManager(path, nil, cm)
	if err != nil {
		t.Fatal("Failed to load wrapped items:", err)
	}
	items := im.Items()
	if len(items) != 1 || items[0].ModelNumber != "H500" {
		t.Fatalf("Expected the wrapped item to load, got %d items", len(items))
	}
	if items[0].Category() == nil || items[0].Category().Name != UncategorizedName {
		t.Error("Expected an item without a resolvable path to land in the fallback category")
	}
}

func TestAddItemRequiresCategory(t *testing.T) {
	_, im, _ := setupManagers(t)

	item := im.NewItem("H100", "", 1)
	if err := im.AddItem(item); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for an uncategorized item, got %v", err)
	}
}

func TestAddItemIdempotent(t *testing.T) {
	cm, im, _ := setupManagers(t)

	hinges, _ := cm.AddCategory("Hinges", "Acme")
	item := im.NewItem("H100", "", 1)
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}

	if err := im.AddItem(item); err != nil {
		t.Fatal("Failed to register item:", err)
	}
	if err := im.AddItem(item); err != nil {
		t.Fatal("Redundant register should be a no-op:", err)
	}
	if len(im.Items()) != 1 {
		t.Errorf("Expected 1 item, got %d", len(im.Items()))
	}
}

func TestAddItemToCategoryRedundantSkipsSave(t *testing.T) {
	cm, im, dir := setupManagers(t)

	hinges, _ := cm.AddCategory("Hinges", "Acme")
	item := im.NewItem("H100", "", 1)
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}

	// Drop the document; a redundant add must not rewrite it.
	catPath := filepath.Join(dir, "categories.json")
	if err := os.Remove(catPath); err != nil {
		t.Fatal("Failed to remove document:", err)
	}
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Redundant filing should be a no-op:", err)
	}
	if _, err := os.Stat(catPath); !os.IsNotExist(err) {
		t.Error("Expected a redundant filing to leave the document untouched")
	}
	if len(hinges.Items()) != 1 {
		t.Errorf("Expected 1 item in the category, got %d", len(hinges.Items()))
	}
}

func TestUpdateItem(t *testing.T) {
	cm, im, _ := setupManagers(t)

	hinges, _ := cm.AddCategory("Hinges", "Acme")
	item := im.NewItem("H100", "", 1)
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}
	if err := im.AddItem(item); err != nil {
		t.Fatal("Failed to register item:", err)
	}

	desc := "  Concealed hinge  "
	qty := 50
	updated, err := im.UpdateItem(item.ID, ItemUpdate{Description: &desc, DefaultOrderQuantity: &qty})
	if err != nil {
		t.Fatal("Failed to update item:", err)
	}
	if updated.Description != "Concealed hinge" || updated.DefaultOrderQuantity != 50 {
		t.Errorf("Unexpected updated fields: %q, %d", updated.Description, updated.DefaultOrderQuantity)
	}
	if updated.ModelNumber != "H100" {
		t.Errorf("Expected untouched model number, got %q", updated.ModelNumber)
	}

	blank := "  "
	if _, err := im.UpdateItem(item.ID, ItemUpdate{ModelNumber: &blank}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for blank model number, got %v", err)
	}
	zero := 0
	if _, err := im.UpdateItem(item.ID, ItemUpdate{DefaultOrderQuantity: &zero}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for non-positive quantity, got %v", err)
	}
	if _, err := im.UpdateItem(999, ItemUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestUpdateItemConcurrentWithSave(t *testing.T) {
	cm, im, _ := setupManagers(t)

	hinges, _ := cm.AddCategory("Hinges", "Acme")
	item := im.NewItem("H100", "", 1)
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}
	if err := im.AddItem(item); err != nil {
		t.Fatal("Failed to register item:", err)
	}

	// Field writes and document saves both take the manager lock, so the
	// race detector must stay quiet here.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			desc := fmt.Sprintf("revision %d", i)
			if _, err := im.UpdateItem(item.ID, ItemUpdate{Description: &desc}); err != nil {
				t.Error("Failed to update item:", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if err := im.Save(); err != nil {
				t.Error("Failed to save items:", err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestRemoveItem(t *testing.T) {
	cm, im, _ := setupManagers(t)

	hinges, _ := cm.AddCategory("Hinges", "Acme")
	item := im.NewItem("H100", "", 1)
	if err := cm.AddItemToCategory(item, hinges); err != nil {
		t.Fatal("Failed to file item:", err)
	}
	if err := im.AddItem(item); err != nil {
		t.Fatal("Failed to register item:", err)
	}

	if err := im.RemoveItem(item); err != nil {
		t.Fatal("Failed to remove item:", err)
	}
	if len(im.Items()) != 0 {
		t.Errorf("Expected 0 items, got %d", len(im.Items()))
	}
	if len(hinges.Items()) != 0 {
		t.Error("Expected removal to detach the item from its category")
	}

	// Removing an unknown item is a no-op.
	if err := im.RemoveItem(item); err != nil {
		t.Error("Expected redundant removal to be a no-op:", err)
	}
}

func TestItemFilters(t *testing.T) {
	cm, im, _ := setupManagers(t)

	hinges, _ := cm.AddCategory("Hinges", "Acme")
	slides, _ := cm.AddCategory("Slides", "Globex")

	first := im.NewItem("H100", "", 1)
	second := im.NewItem("S200", "", 1)
	cm.AddItemToCategory(first, hinges)
	cm.AddItemToCategory(second, slides)
	im.AddItem(first)
	im.AddItem(second)

	if got := im.ItemsByCategory(hinges); len(got) != 1 || got[0] != first {
		t.Error("Unexpected ItemsByCategory result")
	}
	if got := im.ItemsBySupplier("globex"); len(got) != 1 || got[0] != second {
		t.Error("Unexpected ItemsBySupplier result")
	}
}

func TestItemRoundTripKeepsCategory(t *testing.T) {
	dir := t.TempDir()
	catPath := filepath.Join(dir, "categories.json")
	itemPath := filepath.Join(dir, "items.json")

	cm, err := NewCategoryManager(catPath, nil)
	if err != nil {
		t.Fatal("Failed to create category manager:", err)
	}
	hinges, _ := cm.AddCategory("Hinges", "Acme")

	im, err := NewItemManager(itemPath, nil, cm)
	if err != nil {
		t.Fatal("Failed to create item manager:", err)
	}
	item := im.NewItem("H100", "Concealed hinge", 5)
	cm.AddItemToCategory(item, hinges)
	if err := im.AddItem(item); err != nil {
		t.Fatal("Failed to register item:", err)
	}

	cm2, err := NewCategoryManager(catPath, nil)
	if err != nil {
		t.Fatal("Failed to reload categories:", err)
	}
	im2, err := NewItemManager(itemPath, nil, cm2)
	if err != nil {
		t.Fatal("Failed to reload items:", err)
	}

	items := im2.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 item after reload, got %d", len(items))
	}
	if items[0].Category() == nil || items[0].Category().FullPath() != "Acme > Hinges" {
		t.Error("Expected the reloaded item to reattach to its category by path")
	}
}
