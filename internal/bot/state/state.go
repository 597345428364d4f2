package state

// User states
const (
	None                       = "none"
	WaitingForListName         = "waiting_for_list_name"
	WaitingForIngredients      = "waiting_for_ingredients"
	WaitingForRecipeName       = "waiting_for_recipe_name"
	WaitingForRecipeCategory   = "waiting_for_recipe_category"
	WaitingForRecipeIngredient = "waiting_for_recipe_ingredients"
	WaitingForRecipeTimer      = "waiting_for_recipe_timer"
)

// Temp data keys
const (
	KeyListID            = "list_id"
	KeyRecipeName        = "recipe_name"
	KeyRecipeCategory    = "recipe_category"
	KeyRecipeIngredients = "recipe_ingredients"
)

// StateManager keeps per-user dialog state between updates.
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
	SetTempData(userID int64, key, value string)
	GetTempData(userID int64, key string) (string, bool)
	ClearTempData(userID int64)
}

var (
	_ StateManager = (*Manager)(nil)
	_ StateManager = (*RedisManager)(nil)
)
