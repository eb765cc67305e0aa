package korekta_test

import (
	"testing"

	"github.com/fwojciec/korekta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() korekta.Request {
	return korekta.Request{
		Model:       "m",
		APIKey:      "k",
		Instruction: "Fix it.",
		Text:        "teh text",
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*korekta.Request)
		want   string
	}{
		{"empty key", func(r *korekta.Request) { r.APIKey = "" }, "API key"},
		{"empty model", func(r *korekta.Request) { r.Model = "" }, "model"},
		{"empty text", func(r *korekta.Request) { r.Text = "" }, "text"},
		{"whitespace text", func(r *korekta.Request) { r.Text = " \n\t" }, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.ErrorIs(t, err, korekta.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, validRequest().Validate())
}

func TestRequest_UserContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Fix it.\n\n---\nteh text\n---", validRequest().UserContent())
}
