package dto

// Messages the storefront shows to customers
const (
	MsgIncompleteData  = "Dados incompletos"
	MsgProductNotFound = "Produto não encontrado"
	MsgInternalError   = "Erro interno"
	MsgTooManyRequests = "Muitas requisições. Tente novamente em instantes."
	MsgRequestTooLarge = "Requisição muito grande"
)

// ErrorResponse is the body of every non-2xx answer.
// Request correlation travels in the X-Request-ID header, not the body.
type ErrorResponse struct {
	Error string `json:"erro"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
