package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vladimiradmaev/recipe-helper/internal/database"
	"github.com/vladimiradmaev/recipe-helper/internal/database/dbtest"
	"github.com/vladimiradmaev/recipe-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
)

type fixture struct {
	users   *UserService
	catalog *CatalogService
	recipes *RecipeService
	lists   *ShoppingListService
	user    *database.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.DB(t)
	recipes := NewRecipeService(db)
	f := &fixture{
		users:   NewUserService(db),
		catalog: NewCatalogService(db),
		recipes: recipes,
		lists:   NewShoppingListService(db, recipes, domain.FixedClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))),
	}
	user, err := f.users.RegisterUser(context.Background(), 42, "tim", "Тимофей", "")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	f.user = user
	return f
}

func (f *fixture) omelette(t *testing.T) *database.Recipe {
	t.Helper()
	r, err := f.recipes.CreateRecipe(context.Background(), f.user.ID, RecipeInput{
		Name:        "яичница",
		Description: "нарезать сосиски, залить яйцами",
		Ingredients: []IngredientInput{
			{Product: "яйцо", Quantity: 2, Unit: "шт."},
			{Product: "сосиски", Quantity: 100, Unit: "грамм"},
		},
		PreparingMinutes: 1,
		CookingMinutes:   5,
	})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	return r
}

func TestRegisterUserIsIdempotent(t *testing.T) {
	f := newFixture(t)
	again, err := f.users.RegisterUser(context.Background(), 42, "other", "Other", "")
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != f.user.ID || again.FirstName != "Тимофей" {
		t.Fatalf("expected existing user, got %+v", again)
	}

	_, err = f.users.GetUserByTelegramID(context.Background(), 7)
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.users.SetCredentials(ctx, f.user.ID, "tim@test.ch", "short"); err == nil {
		t.Fatalf("expected weak password error")
	}
	if err := f.users.SetCredentials(ctx, f.user.ID, "tim@test.ch", "12345678"); err != nil {
		t.Fatal(err)
	}
	ok, err := f.users.CheckPassword(ctx, f.user.ID, "12345678")
	if err != nil || !ok {
		t.Fatalf("expected password match, got %v %v", ok, err)
	}
	ok, _ = f.users.CheckPassword(ctx, f.user.ID, "wrong-password")
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.catalog.CreateColour(ctx, "розовый", []int{255, 192}); !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.catalog.CreateColour(ctx, "розовый", []int{255, 192, 203}); err != nil {
		t.Fatal(err)
	}
	cat, err := f.catalog.CreateProductCategory(ctx, "Животного происхождения", "белый")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Name != "животного происхождения" {
		t.Fatalf("name not normalised: %q", cat.Name)
	}
	if _, err := f.catalog.CreateRecipeCategory(ctx, "завтрак", "желтый"); err != nil {
		t.Fatal(err)
	}

	p1, err := f.catalog.GetOrCreateProduct(ctx, "Яйцо", "животного происхождения")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := f.catalog.GetOrCreateProduct(ctx, "яйцо ", "")
	if err != nil {
		t.Fatal(err)
	}
	if p1.ID != p2.ID {
		t.Fatalf("expected same product, got %d and %d", p1.ID, p2.ID)
	}

	if _, err := f.catalog.GetOrCreateProduct(ctx, "молоко", "нет такой"); !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestCreateRecipeValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.recipes.CreateRecipe(ctx, f.user.ID, RecipeInput{
		Name:        "плохой",
		Ingredients: []IngredientInput{{Product: "яйцо", Quantity: 0, Unit: "шт."}},
	})
	if apperrors.CodeOf(err) != domain.CodeInvalidQuantity {
		t.Fatalf("expected invalid quantity, got %v", err)
	}

	_, err = f.recipes.CreateRecipe(ctx, f.user.ID, RecipeInput{
		Name:             "плохой",
		Ingredients:      []IngredientInput{{Product: "яйцо", Quantity: 1, Unit: "шт."}},
		PreparingMinutes: -1,
	})
	if apperrors.CodeOf(err) != domain.CodeInvalidTimer {
		t.Fatalf("expected invalid timer, got %v", err)
	}

	recipes, _ := f.recipes.ListUserRecipes(ctx, f.user.ID)
	if len(recipes) != 0 {
		t.Fatalf("invalid recipes must not be stored")
	}
}

func TestLoadDomainRecipe(t *testing.T) {
	f := newFixture(t)
	row := f.omelette(t)

	r, err := f.recipes.LoadDomainRecipe(context.Background(), f.user.ID, row.ID)
	if err != nil {
		t.Fatal(err)
	}
	ings := r.Ingredients()
	if len(ings) != 2 || ings[0].Product.Name != "яйцо" || ings[1].Unit.Name != "грамм" {
		t.Fatalf("unexpected ingredients %v", ings)
	}
	if r.Master.Name != "Тимофей" {
		t.Fatalf("unexpected master %v", r.Master)
	}

	if _, err := f.recipes.LoadDomainRecipe(context.Background(), f.user.ID+1, row.ID); !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("recipes of other users must not be visible, got %v", err)
	}
}

func TestShoppingListMergesAcrossRecipeAndIngredients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recipe := f.omelette(t)

	list, err := f.lists.CreateList(ctx, f.user.ID, "на недельку")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.lists.AddIngredient(ctx, f.user.ID, list.ID, IngredientInput{Product: "сосиски", Quantity: 12, Unit: "шт."}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.lists.AddRecipe(ctx, f.user.ID, list.ID, recipe.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.lists.AddIngredient(ctx, f.user.ID, list.ID, IngredientInput{Product: "Яйцо", Quantity: 3, Unit: "шт."}); err != nil {
		t.Fatal(err)
	}

	got, err := f.lists.GetList(ctx, f.user.ID, list.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		key domain.MergeKey
		qty float64
	}{
		{domain.MergeKey{Product: "сосиски", Unit: "шт."}, 12},
		{domain.MergeKey{Product: "яйцо", Unit: "шт."}, 5},
		{domain.MergeKey{Product: "сосиски", Unit: "грамм"}, 100},
	}
	items := got.Items()
	if len(items) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), items)
	}
	for i, w := range want {
		if items[i].Key() != w.key || items[i].Quantity != w.qty {
			t.Fatalf("line %d = %v, want %s %v", i, items[i], w.key, w.qty)
		}
	}
}

func TestShoppingListAddIngredientsRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list, _ := f.lists.CreateList(ctx, f.user.ID, "дом")

	_, err := f.lists.AddIngredients(ctx, f.user.ID, list.ID, []IngredientInput{
		{Product: "хлеб", Quantity: 1, Unit: "шт."},
		{Product: "масло", Quantity: -1, Unit: "грамм"},
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	got, _ := f.lists.GetList(ctx, f.user.ID, list.ID)
	if got.Len() != 0 {
		t.Fatalf("nothing should be stored, got %v", got.Items())
	}
}

func TestShoppingListUnsupportedAddition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list, _ := f.lists.CreateList(ctx, f.user.ID, "дом")

	_, err := f.lists.Add(ctx, f.user.ID, list.ID, domain.Addition{Kind: "coupon"})
	if !errors.Is(err, apperrors.ErrUnsupportedType) {
		t.Fatalf("expected unsupported addition, got %v", err)
	}
}

func TestShoppingListOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list, _ := f.lists.CreateList(ctx, f.user.ID, "дом")

	other, _ := f.users.RegisterUser(ctx, 99, "", "", "")
	_, err := f.lists.AddIngredient(ctx, other.ID, list.ID, IngredientInput{Product: "хлеб", Quantity: 1, Unit: "шт."})
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found for foreign list, got %v", err)
	}
}

func TestShoppingListConcurrentAdds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list, _ := f.lists.CreateList(ctx, f.user.ID, "дом")

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.lists.AddIngredient(ctx, f.user.ID, list.ID, IngredientInput{Product: "молоко", Quantity: 1, Unit: "л"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	got, _ := f.lists.GetList(ctx, f.user.ID, list.ID)
	item, ok := got.Item(domain.MergeKey{Product: "молоко", Unit: "л"})
	if !ok || item.Quantity != writers {
		t.Fatalf("expected %d л, got %v", writers, item)
	}
	if n := f.lists.locks.len(); n != 0 {
		t.Fatalf("expected list locks to be released, %d left", n)
	}
}

func TestListLocksSerialiseAndRelease(t *testing.T) {
	locks := newListLocks()

	unlock := locks.lock(7)
	acquired := make(chan struct{})
	go func() {
		release := locks.lock(7)
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}
	if n := locks.len(); n != 1 {
		t.Fatalf("expected one shared entry, got %d", n)
	}

	unlock()
	<-acquired
	for i := 0; i < 100 && locks.len() != 0; i++ {
		time.Sleep(time.Millisecond)
	}
	if n := locks.len(); n != 0 {
		t.Fatalf("expected no entries after release, got %d", n)
	}
}
