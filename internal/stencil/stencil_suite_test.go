package stencil

import (
	"log"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

//go:generate mockgen -destination "mock_stencil_test.go" -package $GOPACKAGE -write_package_comment=false github.com/san-kum/diffsim/internal/stencil Observer

func TestStencil(t *testing.T) {
	log.SetOutput(GinkgoWriter)
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stencil Suite")
}
