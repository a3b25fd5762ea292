package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)

	t.Run("successful creation", func(t *testing.T) {
		category, err := service.CreateCategory(user.ID, "Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		if category.ID == "" {
			t.Error("expected category to be assigned an ID")
		}
		if category.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, category.UserID)
		}
		if category.Type != models.CategoryTypeExpense {
			t.Errorf("expected type %s, got %s", models.CategoryTypeExpense, category.Type)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := service.CreateCategory(user.ID, "", models.CategoryTypeIncome)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestCategoryWithName(t, db, owner.ID, "Utilities", models.CategoryTypeExpense)
	testutil.CreateTestCategoryWithName(t, db, owner.ID, "Groceries", models.CategoryTypeExpense)
	testutil.CreateTestCategoryWithName(t, db, owner.ID, "Salary", models.CategoryTypeIncome)
	testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

	t.Run("returns only the caller's categories in name order", func(t *testing.T) {
		categories, err := service.GetUserCategories(owner.ID)
		testutil.AssertNoError(t, err)

		if len(categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(categories))
		}
		wantOrder := []string{"Groceries", "Salary", "Utilities"}
		for i, want := range wantOrder {
			if categories[i].Name != want {
				t.Errorf("position %d: expected %q, got %q", i, want, categories[i].Name)
			}
		}
	})

	t.Run("empty result for user with no categories", func(t *testing.T) {
		empty := testutil.CreateTestUser(t, db)

		categories, err := service.GetUserCategories(empty.ID)
		testutil.AssertNoError(t, err)
		if categories == nil || len(categories) != 0 {
			t.Errorf("expected empty slice, got %v", categories)
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)

	t.Run("owner can fetch", func(t *testing.T) {
		got, err := service.GetCategoryByID(owner.ID, category.ID)
		testutil.AssertNoError(t, err)
		if got.ID != category.ID {
			t.Errorf("expected category %s, got %s", category.ID, got.ID)
		}
	})

	t.Run("another user's row reads as not found", func(t *testing.T) {
		_, err := service.GetCategoryByID(other.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	t.Run("partial update changes only provided fields", func(t *testing.T) {
		category := testutil.CreateTestCategoryWithName(t, db, owner.ID, "Dining", models.CategoryTypeExpense)

		categoryType := models.CategoryTypeIncome
		updated, err := service.UpdateCategory(owner.ID, category.ID, CategoryUpdate{Type: &categoryType})
		testutil.AssertNoError(t, err)

		if updated.Type != models.CategoryTypeIncome {
			t.Errorf("expected updated type, got %s", updated.Type)
		}
		if updated.Name != "Dining" {
			t.Errorf("name changed to %q without being requested", updated.Name)
		}
		if !updated.CreatedAt.Equal(category.CreatedAt) {
			t.Error("creation timestamp changed on update")
		}
	})

	t.Run("another user cannot update", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)

		name := "Hijacked"
		_, err := service.UpdateCategory(other.ID, category.ID, CategoryUpdate{Name: &name})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewCategoryService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	t.Run("delete returns the removed row", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)

		deleted, err := service.DeleteCategory(owner.ID, category.ID)
		testutil.AssertNoError(t, err)
		if deleted.ID != category.ID {
			t.Errorf("expected deleted row %s, got %s", category.ID, deleted.ID)
		}

		_, err = service.GetCategoryByID(owner.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("referencing transactions survive with cleared category", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)
		account := testutil.CreateTestAccount(t, db, owner.ID)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, account.ID, &category.ID, "19.99")

		_, err := service.DeleteCategory(owner.ID, category.ID)
		testutil.AssertNoError(t, err)

		var survived models.Transaction
		if err := db.Where("id = ?", tx.ID).First(&survived).Error; err != nil {
			t.Fatalf("transaction should survive category delete: %v", err)
		}
		if survived.CategoryID != nil {
			t.Errorf("expected cleared category reference, got %v", *survived.CategoryID)
		}
	})

	t.Run("another user cannot delete", func(t *testing.T) {
		category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeIncome)

		_, err := service.DeleteCategory(other.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		_, err = service.GetCategoryByID(owner.ID, category.ID)
		testutil.AssertNoError(t, err)
	})
}
