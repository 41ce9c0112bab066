package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWorkspace = "0f1e2d3c-workspace"
	// base64("hana-exporter-shared-secret-key!")
	testSharedKey = "aGFuYS1leHBvcnRlci1zaGFyZWQtc2VjcmV0LWtleSE="
)

func TestSigner_KnownVectors(t *testing.T) {
	signer, err := NewSigner(testWorkspace, testSharedKey)
	require.NoError(t, err)

	tests := []struct {
		name   string
		length int
		date   string
		want   string
	}{
		{"typical body", 42, "Mon, 02 Jan 2006 15:04:05 GMT", "ByB5xiD63gkWaUtr36kIo+g0/NQzQdh8M6bqWNkMkO4="},
		{"empty body", 0, "Thu, 01 Jan 1970 00:00:00 GMT", "coPiWob/TDKhTJ77fxUfstPmfxBupEPAkVJfmIOkfYI="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, signer.Sign(tt.length, tt.date))
		})
	}
}

func TestSigner_Authorization(t *testing.T) {
	signer, err := NewSigner(testWorkspace, testSharedKey)
	require.NoError(t, err)

	got := signer.Authorization(42, "Mon, 02 Jan 2006 15:04:05 GMT")
	assert.Equal(t, "SharedKey "+testWorkspace+":ByB5xiD63gkWaUtr36kIo+g0/NQzQdh8M6bqWNkMkO4=", got)
}

func TestCanonical(t *testing.T) {
	assert.Equal(t,
		"POST\n42\napplication/json\nx-ms-date:Mon, 02 Jan 2006 15:04:05 GMT\n/api/logs",
		canonical(42, "Mon, 02 Jan 2006 15:04:05 GMT"))
}

func TestNewSigner_Errors(t *testing.T) {
	_, err := NewSigner("", testSharedKey)
	assert.ErrorIs(t, err, ErrWorkspaceRequired)

	_, err = NewSigner(testWorkspace, "not base64!")
	assert.ErrorIs(t, err, ErrInvalidSharedKey)

	_, err = NewSigner(testWorkspace, "")
	assert.ErrorIs(t, err, ErrInvalidSharedKey)
}
