package brain

import "net/http"

// Credentials mirrors the fetch credentials policy applied to every request.
type Credentials string

const (
	// CredentialsInclude sends cookies on every request, including
	// cross-origin ones. The backend's session handling relies on it.
	CredentialsInclude Credentials = "include"

	// CredentialsOmit never sends cookies.
	CredentialsOmit Credentials = "omit"
)

// RequestParams are the defaults merged into every outgoing request.
//
// Per-request concerns stay out of here on purpose: cancellation is the
// caller's context.Context and the base URL lives on the client, so there is
// no signal, baseUrl or cancelToken field to misconfigure globally.
type RequestParams struct {
	Credentials Credentials `json:"credentials"`
	Header      http.Header `json:"-"`
}

// defaultRequestParams returns the parameter set every client starts from.
func defaultRequestParams() RequestParams {
	return RequestParams{
		Credentials: CredentialsInclude,
	}
}
