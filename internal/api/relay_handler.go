package api

import (
	"io"
	"net/http"
	"net/url"

	"github.com/ignite/message-relay/internal/pkg/httputil"
	"github.com/ignite/message-relay/internal/relay"
)

// maxBodyBytes caps the url-encoded request body. The largest legitimate
// request is a send_message form, well under this.
const maxBodyBytes = 64 << 10

// RelayHandler adapts an HTTP request to a relay.Request and renders the
// dispatched relay.Result back onto the wire.
type RelayHandler struct {
	core *relay.Dispatcher
}

// NewRelayHandler creates the HTTP adapter for the relay core.
func NewRelayHandler(core *relay.Dispatcher) *RelayHandler {
	return &RelayHandler{core: core}
}

func (h *RelayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := parseRequest(r)
	res := h.core.Dispatch(r.Context(), req)
	writeResult(w, res)
}

// parseRequest extracts the relay request fields: parameters come from the
// query string when non-empty, otherwise from the url-encoded body; the
// credential comes from the basic auth header. Unparseable input yields
// empty parameters, which the core resolves to its documented failures —
// the transport never rejects a request itself.
func parseRequest(r *http.Request) *relay.Request {
	var params url.Values
	if r.URL.RawQuery != "" {
		params, _ = url.ParseQuery(r.URL.RawQuery)
	} else {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err == nil {
			params, _ = url.ParseQuery(string(body))
		}
	}
	if params == nil {
		params = url.Values{}
	}

	var cred *relay.Credential
	if user, pass, ok := r.BasicAuth(); ok {
		cred = &relay.Credential{Username: user, Password: pass}
	}

	return &relay.Request{
		Method:     r.Method,
		Action:     params.Get("action"),
		Params:     params,
		Credential: cred,
	}
}

// codeStatus maps core outcomes to HTTP statuses. Conflict intentionally
// renders as 401: the duplicate-registration status is part of the original
// wire contract and existing clients depend on it.
var codeStatus = map[relay.Code]int{
	relay.Ok:             http.StatusOK,
	relay.NoContent:      http.StatusNoContent,
	relay.BadRequest:     http.StatusBadRequest,
	relay.Unauthorized:   http.StatusUnauthorized,
	relay.Conflict:       http.StatusUnauthorized,
	relay.NotFound:       http.StatusNotFound,
	relay.NotImplemented: http.StatusNotImplemented,
	relay.InternalError:  http.StatusInternalServerError,
}

func writeResult(w http.ResponseWriter, res relay.Result) {
	status, ok := codeStatus[res.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusNoContent {
		httputil.NoContent(w)
		return
	}
	httputil.Raw(w, status, res.ContentType, res.Body)
}
