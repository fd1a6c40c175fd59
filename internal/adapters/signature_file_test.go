package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureFileAdapterVerify(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		wantErr bool
	}{
		{name: "author and distributor", files: []string{"author-signature.xml", "signature1.xml"}},
		{name: "missing author", files: []string{"signature1.xml"}, wantErr: true},
		{name: "missing distributor", files: []string{"author-signature.xml"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, file := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte("<Signature/>"), 0644))
			}
			err := NewSignatureFileAdapter().Verify(dir)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))
		})
	}
}
