package library

// ErrResponse is a coded error kind. Operations wrap these with context, so
// callers match them with errors.Is.
type ErrResponse struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e ErrResponse) Error() string {
	return e.Message
}

var ErrUserNotFound = ErrResponse{201, "user not found"}
var ErrBookUnavailable = ErrResponse{202, "book is not available for checkout"}
var ErrCheckoutLimitReached = ErrResponse{203, "checkout limit reached"}
var ErrCheckInTargetNotFound = ErrResponse{204, "no checked-out book found with that ID or title"}
var ErrDuplicateUserID = ErrResponse{205, "a user with that ID already exists"}
var ErrMissingRequiredField = ErrResponse{206, "all fields must be filled"}
var ErrCannotRemoveCheckedOutBook = ErrResponse{207, "cannot remove a book that is currently checked out"}
var ErrCannotDeleteUserWithActiveCheckouts = ErrResponse{208, "cannot delete a user who has books checked out"}
var ErrBookNotFound = ErrResponse{209, "book not found"}
var ErrDuplicateBookID = ErrResponse{210, "a book with that ID already exists"}
var ErrCorruptDataFile = ErrResponse{211, "data file is present but could not be read"}
