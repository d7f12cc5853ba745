package handler

const (
	errBadRequest         = "Request could not be processed"
	errDuplicateEmail     = "Email is already registered"
	errInvalidCredentials = "Invalid credentials"
	errTodoNotFound       = "Todo not found"
)
