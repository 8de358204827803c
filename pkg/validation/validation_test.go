package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "secureid/pkg/domain-errors"
)

type sample struct {
	APIURL  string `yaml:"apiUrl" validate:"required,url"`
	Country string `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	Name    string `validate:"omitempty,notblank"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantMsg string
	}{
		{name: "valid", in: sample{APIURL: "https://api.example.com/graphql", Country: "US"}},
		{name: "missing url", in: sample{}, wantMsg: "apiUrl is required"},
		{name: "bad url", in: sample{APIURL: "not a url"}, wantMsg: "apiUrl must be a valid url"},
		{name: "bad country", in: sample{APIURL: "https://x.io", Country: "USA"}, wantMsg: "country must be an ISO 3166-1 alpha-2 country code"},
		{name: "blank name", in: sample{APIURL: "https://x.io", Name: "   "}, wantMsg: "Name must not be blank"},
		{name: "bad level", in: sample{APIURL: "https://x.io", Level: "trace"}, wantMsg: "level must be one of [debug info warn error]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
