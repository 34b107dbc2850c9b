package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatientInitials(t *testing.T) {
	cases := map[string]string{
		"John Doe":         "JD",
		"Cher":             "C",
		"Mary Jane Watson": "MJ",
		"  padded   name ": "PN",
		"josé garcía":      "JG",
		"Åsa Öberg":        "ÅÖ",
		"":                 "",
	}
	for name, want := range cases {
		p := Patient{Name: name}
		assert.Equal(t, want, p.Initials(), "name %q", name)
	}
}
