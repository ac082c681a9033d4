// Package request normalizes the credential and payload fields shared by
// every API endpoint, and gates caller-supplied column names.
package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultColumn is the generic value column used when no selector is supplied.
const DefaultColumn = "set_value"

// Params holds the normalized fields extracted from a request.
// Text is a pointer so an absent field can be told apart from an empty string.
type Params struct {
	Email    string
	Password string
	Column   string
	Text     *string
	APIValue string
	Action   string
}

// HasCredentials reports whether both email and password were supplied.
func (p *Params) HasCredentials() bool {
	return p.Email != "" && p.Password != ""
}

// Parse extracts normalized parameters from a request. The credential fields
// accept the legacy aliases: "id" for email and "pw" for password, with the
// canonical names taking priority when non-empty.
//
// GET requests are read from the query string; POST requests branch on the
// declared content type (JSON object, otherwise form-encoded fields).
func Parse(r *http.Request) (*Params, error) {
	return extract(r, true)
}

// ParseStrict is Parse without the id/pw aliases, for the user-info endpoints
// which only ever accepted the canonical field names.
func ParseStrict(r *http.Request) (*Params, error) {
	return extract(r, false)
}

func extract(r *http.Request, aliases bool) (*Params, error) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return extractQuery(r, aliases), nil
	}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		return extractJSON(r, aliases)
	}
	return extractForm(r, aliases)
}

func extractQuery(r *http.Request, aliases bool) *Params {
	q := r.URL.Query()

	email := q.Get("email")
	if aliases && email == "" {
		email = q.Get("id")
	}
	password := q.Get("password")
	if aliases && password == "" {
		password = q.Get("pw")
	}

	p := &Params{
		Email:    normalizeEmail(decodeExtra(email)),
		Password: decodeExtra(password),
		Column:   defaultColumn(q.Get("column")),
		APIValue: strings.TrimSpace(decodeExtra(q.Get("api_value"))),
		Action:   decodeExtra(q.Get("action")),
	}

	// Field presence, not emptiness: ?text= is an empty value, no text at all
	// is a missing one.
	if q.Has("text") {
		text := decodeExtra(q.Get("text"))
		p.Text = &text
	}

	return p
}

func extractJSON(r *http.Request, aliases bool) (*Params, error) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON body: %w", err)
	}

	// A non-object body carries no fields; validation rejects it downstream.
	body, _ := raw.(map[string]any)

	email := stringify(body["email"])
	if aliases && email == "" {
		email = stringify(body["id"])
	}
	password := stringify(body["password"])
	if aliases && password == "" {
		password = stringify(body["pw"])
	}

	p := &Params{
		Email:    normalizeEmail(email),
		Password: password,
		Column:   defaultColumn(stringify(body["column"])),
		APIValue: strings.TrimSpace(stringify(body["api_value"])),
		Action:   stringify(body["action"]),
	}

	if v, ok := body["text"]; ok && v != nil {
		text := stringify(v)
		p.Text = &text
	}

	return p, nil
}

func extractForm(r *http.Request, aliases bool) (*Params, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return nil, fmt.Errorf("failed to parse multipart body: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form body: %w", err)
		}
	}
	form := r.PostForm

	email := form.Get("email")
	if aliases && email == "" {
		email = form.Get("id")
	}
	password := form.Get("password")
	if aliases && password == "" {
		password = form.Get("pw")
	}

	p := &Params{
		Email:    normalizeEmail(email),
		Password: password,
		Column:   defaultColumn(form.Get("column")),
		APIValue: strings.TrimSpace(form.Get("api_value")),
		Action:   form.Get("action"),
	}

	if _, ok := form["text"]; ok {
		text := form.Get("text")
		p.Text = &text
	}

	return p, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func defaultColumn(s string) string {
	if col := strings.TrimSpace(s); col != "" {
		return col
	}
	return DefaultColumn
}

// decodeExtra applies a second percent-decode pass to a query value. The
// client program sends values encoded once more than the transport requires,
// so "%2540" arrives here as "%40" and must become "@". Values without
// escapes (or with malformed ones) pass through unchanged. PathUnescape is
// used so a literal "+" survives.
func decodeExtra(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// stringify renders a decoded JSON value the way the endpoint contract
// expects scalar fields: strings as-is, numbers and booleans flattened,
// null/absent as empty.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
