package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v0.3.1"
	defer func() { Version = old }()

	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version v0.3.1\n") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "version: v0.3.1") {
		t.Errorf("String() = %q", String())
	}
}
