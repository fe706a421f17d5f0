package rosterfile

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/teamdex/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseRows_Basic(t *testing.T) {
	t.Parallel()

	rows, err := ParseRows(strings.NewReader("Ash,Pikachu\nMisty,Starmie"), newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{
		{Person: "Ash", Species: "Pikachu", Line: 1},
		{Person: "Misty", Species: "Starmie", Line: 2},
	}, rows)
}

func TestParseRows_TrimsAndSkipsNoise(t *testing.T) {
	t.Parallel()

	input := "\ufeff# team roster\r\n" +
		"\r\n" +
		"   Ash  ,  Pikachu   \r\n" +
		"  # Brock,Onix\n" +
		"\t\n" +
		"Misty,Starmie,extra,fields\n"

	rows, err := ParseRows(strings.NewReader(input), newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{
		{Person: "Ash", Species: "Pikachu", Line: 3},
		{Person: "Misty", Species: "Starmie", Line: 6},
	}, rows)
}

func TestParseRows_SkipsIncompleteLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	input := "Ash,Pikachu\nGary\n,Eevee\nBrock,  \nMisty,Starmie\n"
	rows, err := ParseRows(strings.NewReader(input), log)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Ash", rows[0].Person)
	assert.Equal(t, "Misty", rows[1].Person)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "skipping roster line"))
	assert.Contains(t, out, "line=2")
}

func TestParseRows_NoRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "only comments", input: "# a\n# b\n"},
		{name: "only blank", input: "\n  \n\t\n"},
		{name: "only invalid", input: "Ash\n,Pikachu\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseRows(strings.NewReader(tt.input), newTestLogger())
			assert.ErrorIs(t, err, domain.ErrNoRows)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseRows_ReadError(t *testing.T) {
	t.Parallel()

	_, err := ParseRows(failingReader{}, newTestLogger())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoRows)
}

func TestParseLine_Validation(t *testing.T) {
	t.Parallel()

	_, err := parseLine(" , ")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 2)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
