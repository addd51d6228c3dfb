package formula

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testData := map[string]struct {
		input    string
		err      error
		response string
		terms    []string
	}{
		"single term": {
			input:    "n ~ wday",
			response: "n",
			terms:    []string{"wday"},
		},
		"multiple terms": {
			input:    "n ~ wday + term",
			response: "n",
			terms:    []string{"wday", "term"},
		},
		"whitespace": {
			input:    "  n~wday+ term ",
			response: "n",
			terms:    []string{"wday", "term"},
		},
		"no tilde": {
			input: "n wday",
			err:   ErrBadFormula,
		},
		"two tildes": {
			input: "n ~ wday ~ term",
			err:   ErrBadFormula,
		},
		"no response": {
			input: " ~ wday",
			err:   ErrNoResponse,
		},
		"empty term": {
			input: "n ~ wday + ",
			err:   ErrEmptyTerm,
		},
		"duplicate term": {
			input: "n ~ wday + wday",
			err:   ErrDupTerm,
		},
		"response as term": {
			input: "n ~ n",
			err:   ErrSelfTerm,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			form, err := Parse(td.input)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.response, form.Response())
			assert.Equal(t, td.terms, form.Terms())
		})
	}
}

func TestNew(t *testing.T) {
	_, err := New("n")
	assert.ErrorIs(t, err, ErrNoTerms)

	form, err := New("n", "wday", "term")
	require.Nil(t, err)
	assert.Equal(t, "n ~ wday + term", form.String())
}

func TestFormulaStringRoundTrip(t *testing.T) {
	form, err := Parse("n ~ wday + term")
	require.Nil(t, err)

	again, err := Parse(form.String())
	require.Nil(t, err)
	assert.Equal(t, form, again)
}

func TestFormulaJSONRoundTrip(t *testing.T) {
	form, err := Parse("n ~ wday + term")
	require.Nil(t, err)

	out, err := json.Marshal(form)
	require.Nil(t, err)
	assert.Equal(t, `"n ~ wday + term"`, string(out))

	var decoded Formula
	require.Nil(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, form.String(), decoded.String())
}
