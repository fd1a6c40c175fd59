package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"widget-installer/internal/ports"
)

const authorSignatureFile = "author-signature.xml"

var _ ports.SignaturePort = SignatureFileAdapter{}

// SignatureFileAdapter checks that an unpacked package carries an author
// signature and at least one distributor signature. The signatures
// themselves are not validated.
type SignatureFileAdapter struct{}

func NewSignatureFileAdapter() SignatureFileAdapter {
	return SignatureFileAdapter{}
}

func (SignatureFileAdapter) Verify(packageDir string) error {
	if _, err := os.Stat(filepath.Join(packageDir, authorSignatureFile)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("package %s has no %s", packageDir, authorSignatureFile)).
			WithCause(err)
	}
	distributor, err := filepath.Glob(filepath.Join(packageDir, "signature*.xml"))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list distributor signatures").
			WithCause(err)
	}
	if len(distributor) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("package %s has no distributor signature", packageDir))
	}
	return nil
}
