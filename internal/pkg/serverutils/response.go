package serverutils

// ErrorBody is the uniform error payload for every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}
