// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyValidationInvalid = "validation.invalid"
	KeyNotFound          = "common.not_found"
	KeyInternalError     = "common.internal_error"
	KeyRateLimited       = "common.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthPasswordMismatch   = "auth.password_mismatch"
	KeyAccessDenied           = "auth.access_denied"

	// Users
	KeyUserNotFound = "user.not_found"

	// Catalog
	KeyTagNotFound          = "tag.not_found"
	KeyIngredientNotFound   = "ingredient.not_found"
	KeyIngredientInUse      = "ingredient.in_use"
	KeyIngredientsRequired  = "ingredient.required"
	KeyTagsRequired         = "tag.required"
	KeyIngredientAmount     = "ingredient.amount_min"
	KeyIngredientDuplicated = "ingredient.duplicated"

	// Recipes
	KeyRecipeNotFound    = "recipe.not_found"
	KeyRecipeCookingTime = "recipe.cooking_time_min"
	KeyRecipeNotOwner    = "recipe.not_owner"
	KeyRecipeImage       = "recipe.image_invalid"

	// Relations
	KeyFavoriteExists      = "favorite.exists"
	KeyFavoriteNotFound    = "favorite.not_found"
	KeyCartExists          = "cart.exists"
	KeyCartNotFound        = "cart.not_found"
	KeySubscriptionExists  = "subscription.exists"
	KeySubscriptionMissing = "subscription.not_found"
	KeySubscriptionSelf    = "subscription.self"
)
