package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeError struct {
	code int
	msg  string
}

func (e *codeError) Error() string  { return e.msg }
func (e *codeError) ErrorCode() int { return e.code }

// fakeWallet answers JSON-RPC methods from a table of raw results or errors.
type fakeWallet struct {
	results map[string]string
	errs    map[string]error
	calls   []string
}

func (w *fakeWallet) CallContext(_ context.Context, result interface{}, method string, _ ...interface{}) error {
	w.calls = append(w.calls, method)
	if err, ok := w.errs[method]; ok {
		return err
	}
	raw, ok := w.results[method]
	if !ok {
		return fmt.Errorf("method %s not found", method)
	}
	return json.Unmarshal([]byte(raw), result)
}

type staticNames map[uint64]string

func (s staticNames) NameFor(id uint64) string { return s[id] }

func TestIsAvailable(t *testing.T) {
	assert.False(t, NewProvider(nil, nil).IsAvailable())

	var typedNil *fakeWallet
	assert.False(t, NewProvider(typedNil, nil).IsAvailable())

	assert.True(t, NewProvider(&fakeWallet{}, nil).IsAvailable())
}

func TestRequestAccounts_NoWallet(t *testing.T) {
	_, err := NewProvider(nil, nil).RequestAccounts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderUnavailable))
}

func TestRequestAccounts_Success(t *testing.T) {
	w := &fakeWallet{results: map[string]string{
		"eth_requestAccounts": `["0x00000000000000000000000000000000000000aa"]`,
	}}

	accounts, err := NewProvider(w, nil).RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "0x00000000000000000000000000000000000000AA", accounts[0].Hex())
}

func TestRequestAccounts_Rejected(t *testing.T) {
	w := &fakeWallet{errs: map[string]error{
		"eth_requestAccounts": &codeError{code: 4001, msg: "denied"},
	}}

	_, err := NewProvider(w, nil).RequestAccounts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserRejected))
	assert.False(t, errors.Is(err, ErrProviderUnavailable))
	assert.Contains(t, err.Error(), "denied")
}

func TestRequestAccounts_EmptyIsRejection(t *testing.T) {
	w := &fakeWallet{results: map[string]string{"eth_requestAccounts": `[]`}}

	_, err := NewProvider(w, nil).RequestAccounts(context.Background())
	assert.True(t, errors.Is(err, ErrUserRejected))
}

func TestRequestAccounts_TransportFailure(t *testing.T) {
	w := &fakeWallet{errs: map[string]error{
		"eth_requestAccounts": errors.New("dial tcp: connection refused"),
	}}

	_, err := NewProvider(w, nil).RequestAccounts(context.Background())
	assert.True(t, errors.Is(err, ErrProviderUnavailable))
}

func TestNetworkIdentity(t *testing.T) {
	w := &fakeWallet{results: map[string]string{"eth_chainId": `"0xaa36a7"`}}

	id, err := NewProvider(w, staticNames{11155111: "sepolia"}).NetworkIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NetworkIdentity{ChainID: 11155111, Name: "sepolia"}, id)
}

func TestNetworkIdentity_Failure(t *testing.T) {
	w := &fakeWallet{errs: map[string]error{"eth_chainId": errors.New("boom")}}

	_, err := NewProvider(w, nil).NetworkIdentity(context.Background())
	assert.True(t, errors.Is(err, ErrProviderUnavailable))

	_, err = NewProvider(nil, nil).NetworkIdentity(context.Background())
	assert.True(t, errors.Is(err, ErrProviderUnavailable))
}

func TestRevoke_WalletWithoutApprovalsIsUntouched(t *testing.T) {
	NewProvider(nil, nil).Revoke()

	w := &fakeWallet{}
	NewProvider(w, nil).Revoke()
	assert.Empty(t, w.calls)
}
