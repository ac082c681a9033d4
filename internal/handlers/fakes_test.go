package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/bobmcallan/linweb-api/internal/models"
	"github.com/bobmcallan/linweb-api/internal/supabase"
)

// fakeAuth implements Authenticator. With no overrides it accepts any
// credentials and echoes the submitted email back.
type fakeAuth struct {
	echoEmail string // returned instead of the submitted email when set
	echoEmpty bool   // provider returns no email at all
	err       error

	calls        int
	lastEmail    string
	lastPassword string
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (string, error) {
	f.calls++
	f.lastEmail = email
	f.lastPassword = password
	if f.err != nil {
		return "", f.err
	}
	if f.echoEmpty {
		return "", nil
	}
	if f.echoEmail != "" {
		return f.echoEmail, nil
	}
	return email, nil
}

func rejectingAuth(message string) *fakeAuth {
	return &fakeAuth{err: &supabase.AuthError{Message: message}}
}

// fakeStore implements ProfileStore and VersionStore over an in-memory row.
type fakeStore struct {
	mu sync.Mutex

	values  map[string]string // column -> value
	product models.ProductInfo
	version *string

	getErr     error
	setErr     error
	productErr error
	versionErr error

	getCalls    int
	setCalls    int
	lastEmail   string
	lastColumns map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) GetValue(_ context.Context, email, column string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	f.lastEmail = email
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.values[column], nil
}

func (f *fakeStore) SetValues(_ context.Context, email string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	f.lastEmail = email
	f.lastColumns = fields
	if f.setErr != nil {
		return f.setErr
	}
	for col, v := range fields {
		if s, ok := v.(string); ok {
			f.values[col] = s
		}
	}
	return nil
}

func (f *fakeStore) GetProduct(_ context.Context, email string) (*models.ProductInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	f.lastEmail = email
	if f.productErr != nil {
		return nil, f.productErr
	}
	info := f.product
	return &info, nil
}

func (f *fakeStore) UpdateProductToken(_ context.Context, email, token string) (*models.ProductInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	f.lastEmail = email
	if f.setErr != nil {
		return nil, f.setErr
	}
	f.product.Token = &token
	info := f.product
	return &info, nil
}

func (f *fakeStore) GetVersion(_ context.Context) (*string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.versionErr != nil {
		return nil, f.versionErr
	}
	return f.version, nil
}

func (f *fakeStore) storeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls + f.setCalls
}

func isHex(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f')
	}) == -1
}
