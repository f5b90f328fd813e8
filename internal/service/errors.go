package service

import "errors"

// Kind classifies service failures so handlers can map them to an HTTP
// status without inspecting individual sentinels.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindForbidden
)

// Error is a service-level failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func conflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func notFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func forbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf reports the Kind of err, or 0 when err is not a service error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}

var (
	ErrInvalidCredentials = validationError("invalid credentials")
	ErrWrongPassword      = validationError("current password is incorrect")
	ErrEmailTaken         = conflictError("a user with this email already exists")
	ErrUsernameTaken      = conflictError("a user with this username already exists")

	ErrUserNotFound   = notFoundError("user not found")
	ErrRecipeNotFound = notFoundError("recipe not found")
	ErrTagNotFound    = notFoundError("tag not found")

	ErrIngredientNotFound = notFoundError("ingredient not found")

	ErrTagsRequired        = validationError("at least one tag is required")
	ErrIngredientsRequired = validationError("at least one ingredient is required")
	ErrUnknownTag          = validationError("tag does not exist")
	ErrUnknownIngredient   = validationError("ingredient does not exist")
	ErrAmountTooSmall      = validationError("ingredient amount must be at least 1")
	ErrDuplicateIngredient = validationError("ingredient must not repeat within a recipe")
	ErrInvalidImage        = validationError("image payload could not be decoded")

	ErrNotRecipeAuthor = forbiddenError("only the author can modify this recipe")

	ErrSelfFollow        = validationError("subscribing to yourself is not allowed")
	ErrAlreadyFollowing  = conflictError("already subscribed to this author")
	ErrFollowNotFound    = notFoundError("subscription not found")
	ErrAlreadyFavorited  = conflictError("recipe is already in favorites")
	ErrFavoriteNotFound  = notFoundError("recipe is not in favorites")
	ErrAlreadyInCart     = conflictError("recipe is already in the shopping cart")
	ErrCartEntryNotFound = notFoundError("recipe is not in the shopping cart")
)
